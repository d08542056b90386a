// Package vdom provides the virtual node tree rendered by package renderer.
//
// # Core Types
//
// VNode is the building block for elements, text, fragments and
// components. Props holds attributes, DOM properties and event handlers.
// Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Ul(Class("list"),
//	    Li(Key("a"), Text("A")),
//	    Li(Key("b"), Text("B")),
//	)
//
// # Keys
//
// Children that carry a Key are matched by key when a list is patched, so
// reordering moves host nodes instead of recreating them. Keys must be
// comparable and unique among siblings.
//
// # Components
//
// A Component describes stateful UI: declared props, a reactive state
// factory, a render function or a setup function returning one, and
// lifecycle hooks. Comp places a component in the tree.
package vdom
