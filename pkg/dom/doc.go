// Package dom is an in-memory document that the renderer can target.
//
// A Document owns a tree of Nodes and exposes it through Host, which
// satisfies renderer.Host. Props are applied the way a browser host would
// apply them: "on" keys register event invokers, "class" sets the class
// name, keys that are DOM properties of the element are set as
// properties, and everything else becomes an attribute.
//
// Every mutation can be observed, which is how live sessions stream the
// document to a remote client:
//
//	doc := dom.NewDocument()
//	doc.Observe(func(m dom.Mutation) { frame = append(frame, m) })
//	r := renderer.New(rt, doc.Host())
//	r.Render(view, doc.Body())
//
// Events are dispatched with Dispatch and bubble to the root. A Document is
// not safe for concurrent use; drive it from the goroutine that owns the
// reactive runtime.
package dom
