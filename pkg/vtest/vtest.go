package vtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// Harness is a runtime, a document, a recorder and a renderer wired
// together.
type Harness struct {
	tb       testing.TB
	Runtime  *reactive.Runtime
	Doc      *dom.Document
	Recorder *Recorder
	Renderer *renderer.Renderer

	// Errors collects failures reported through the renderer's error
	// handler.
	Errors []error
}

// New creates a harness. Renderer options are passed through; the error
// handler is always replaced by one that collects into Errors.
func New(tb testing.TB, opts ...renderer.Option) *Harness {
	tb.Helper()
	h := &Harness{
		tb:      tb,
		Runtime: reactive.New(),
		Doc:     dom.NewDocument(),
	}
	h.Recorder = NewRecorder(h.Doc.Host())
	opts = append(opts, renderer.WithErrorHandler(func(err error) {
		h.Errors = append(h.Errors, err)
	}))
	h.Renderer = renderer.New(h.Runtime, h.Recorder, opts...)
	return h
}

// Render renders v into the document body.
func (h *Harness) Render(v *vdom.VNode) {
	h.Renderer.Render(v, h.Doc.Body())
}

// Tick runs posted tasks, hooks and queued re-renders.
func (h *Harness) Tick() {
	h.Runtime.Tick()
}

// WaitPosted ticks until a posted task has run, failing the test after
// timeout.
func (h *Harness) WaitPosted(timeout time.Duration) {
	h.tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := h.Runtime.WaitPosted(ctx); err != nil {
		h.tb.Fatalf("no posted task ran within %s", timeout)
	}
}

// HTML returns the markup inside the body.
func (h *Harness) HTML() string {
	return dom.InnerHTML(h.Doc.Body())
}

// Find returns the first element with the given tag, failing the test if
// there is none.
func (h *Harness) Find(tag string) *dom.Node {
	h.tb.Helper()
	n := h.Doc.Body().Find(tag)
	if n == nil {
		h.tb.Fatalf("no <%s> in %s", tag, truncate(h.HTML(), 500))
	}
	return n
}

// Dispatch sends an event of the given type to n.
func (h *Harness) Dispatch(n *dom.Node, typ string) int {
	return h.Doc.Dispatch(n, h.Doc.NewEvent(typ))
}

// Click dispatches a click to n.
func (h *Harness) Click(n *dom.Node) int {
	return h.Dispatch(n, "click")
}

// Input sets the value property of n and dispatches an input event.
func (h *Harness) Input(n *dom.Node, value string) int {
	h.Doc.PatchProp(n, "value", n.Prop("value"), value)
	ev := h.Doc.NewEvent("input")
	ev.Value = value
	return h.Doc.Dispatch(n, ev)
}

// ExpectHTML asserts that the body markup equals want.
func ExpectHTML(t *testing.T, h *Harness, want string) {
	t.Helper()
	if got := h.HTML(); got != want {
		t.Errorf("HTML = %s, want %s", got, want)
	}
}

// RenderToString renders a VNode into a fresh document and returns the
// HTML string.
func RenderToString(node *vdom.VNode) string {
	return dom.RenderString(node)
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view, "Welcome Admin")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
