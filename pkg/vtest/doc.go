// Package vtest provides testing helpers for renderers and components.
//
// A Recorder wraps any renderer.Host and records every operation the
// renderer performs, which makes it possible to assert on the exact
// number of host mutations a patch costs:
//
//	rec := vtest.NewRecorder(doc.Host())
//	r := renderer.New(rt, rec)
//	r.Render(list("a", "b", "c"), doc.Body())
//	rec.Reset()
//	r.Render(list("c", "a", "b"), doc.Body())
//	if rec.Count(vtest.OpInsert) != 1 { ... }
//
// # Harness
//
// New wires a runtime, an in-memory document, a recorder and a renderer
// together for component tests:
//
//	h := vtest.New(t)
//	h.Render(vdom.Comp(Counter))
//	h.Click(h.Find("button"))
//	h.Tick()
//	vtest.ExpectHTML(t, h, `<button>1</button>`)
//
// # Render Assertions
//
// Assert on rendered HTML output of a static tree:
//
//	vtest.ExpectContains(t, view, "Welcome")
//	vtest.ExpectElement(t, view, "button")
package vtest
