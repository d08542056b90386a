package vdom

import (
	"github.com/vango-dev/rendr/pkg/reactive"
)

// RenderContext is what a component sees while rendering.
type RenderContext interface {
	// State returns the reactive state built from Component.Data.
	State() *reactive.ObjectProxy

	// Props returns the declared props (and event handlers) passed by the
	// parent. The proxy is shallow: nested values are not wrapped.
	Props() *reactive.ObjectProxy

	// Attrs returns the props the parent passed that the component did not
	// declare. They fall through onto the root element.
	Attrs() Props

	// Emit calls the parent's handler for event, passed as an "on" prop.
	Emit(event string, args ...any)

	// Runtime returns the reactive runtime the component runs on.
	Runtime() *reactive.Runtime
}

// SetupContext is passed to Component.Setup. Lifecycle callbacks
// registered on it run after those declared on the Component.
type SetupContext interface {
	RenderContext

	OnBeforeMount(fn func())
	OnMounted(fn func())
	OnBeforeUpdate(fn func())
	OnUpdated(fn func())
	OnUnmounted(fn func())
}

// Component describes stateful UI.
type Component struct {
	// Name identifies the component in logs and errors.
	Name string

	// Props lists the prop names the component accepts. Any other prop
	// passed by the parent, except event handlers, is treated as an attr.
	Props []string

	// Data returns the initial state. It is wrapped in a reactive proxy.
	Data func() map[string]any

	// Setup runs once per instance and may return a render function,
	// which then takes precedence over Render.
	Setup func(ctx SetupContext) func() *VNode

	// Render produces the subtree.
	Render func(ctx RenderContext) *VNode

	// Func, when set, makes the component functional: it has no state and
	// renders from its props alone.
	Func func(props Props) *VNode

	// Lifecycle hooks.
	BeforeCreate func(ctx RenderContext)
	Created      func(ctx RenderContext)
	BeforeMount  func(ctx RenderContext)
	Mounted      func(ctx RenderContext)
	BeforeUpdate func(ctx RenderContext)
	Updated      func(ctx RenderContext)
	Unmounted    func(ctx RenderContext)
}

// Functional declares a stateless component rendered from its props.
func Functional(name string, props []string, render func(props Props) *VNode) *Component {
	return &Component{Name: name, Props: props, Func: render}
}

// Comp places a component in the tree. Arguments are props, given like
// element arguments: Attr, []Attr, Props or EventHandler. Key sets the
// node key.
func Comp(c *Component, args ...any) *VNode {
	node := &VNode{
		Kind:  KindComponent,
		Comp:  c,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		case EventHandler:
			node.Props[v.Event] = v.Handler
		}
	}
	return node
}
