package renderer_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	. "github.com/vango-dev/rendr/pkg/vdom"

	"github.com/vango-dev/rendr/pkg/renderer"
	"github.com/vango-dev/rendr/pkg/telemetry"
	"github.com/vango-dev/rendr/pkg/vtest"
)

func TestMountElement(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(ID("app"), Class("a", "b"), P("hello"), Span(Content("body"))))

	vtest.ExpectHTML(t, h, `<div class="a b" id="app"><p>hello</p><span>body</span></div>`)

	// Children are inserted before their parent, so the tree is attached
	// with a single insert into the container.
	ops := h.Recorder.Ops()
	last := ops[len(ops)-1]
	if last.Name != vtest.OpInsert || last.Parent != h.Doc.Body() {
		t.Errorf("last op = %v, want insert into body", last)
	}
}

func TestRepatchIdenticalTreeIsFree(t *testing.T) {
	view := func() *VNode {
		return Div(
			ID("app"),
			Ul(Li(Key("a"), "a"), Li(Key("b"), "b")),
			Fragment(P("x"), P(Content("y"))),
			Input(Value("v"), Disabled(true)),
		)
	}

	h := vtest.New(t)
	h.Render(view())
	h.Recorder.Reset()

	h.Render(view())
	if m := h.Recorder.Mutations(); len(m) != 0 {
		t.Errorf("re-rendering an identical tree made %d mutations:\n%s", len(m), h.Recorder)
	}
}

func TestPatchText(t *testing.T) {
	h := vtest.New(t)
	h.Render(P("one"))
	h.Recorder.Reset()

	h.Render(P("two"))
	vtest.ExpectHTML(t, h, `<p>two</p>`)
	if n := len(h.Recorder.Mutations()); n != 1 || h.Recorder.Count(vtest.OpSetText) != 1 {
		t.Errorf("mutations = %s, want a single set_text", h.Recorder)
	}
}

func TestPatchProps(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(Class("a"), ID("x"), Data("role", "box")))
	h.Recorder.Reset()

	h.Render(Div(Class("b"), Data("role", "box")))
	vtest.ExpectHTML(t, h, `<div class="b" data-role="box"></div>`)

	if got := h.Recorder.Count(vtest.OpPatchProp); got != 2 {
		t.Errorf("patch_prop count = %d, want 2 (class changed, id removed)", got)
	}
	for _, op := range h.Recorder.Ops() {
		if op.Key == "id" && op.Next != nil {
			t.Errorf("removed prop patched with %v, want nil", op.Next)
		}
	}
}

func TestReplaceDifferentType(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(P("x"), Span("y")))
	h.Render(Div(H1("x"), Span("y")))

	vtest.ExpectHTML(t, h, `<div><h1>x</h1><span>y</span></div>`)
	if h.Recorder.Count(vtest.OpRemove) != 1 {
		t.Errorf("remove count = %d, want 1", h.Recorder.Count(vtest.OpRemove))
	}
}

func TestReplaceTextWithElement(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(Text("a"), Text("b")))
	h.Render(Div(Strong("a"), Text("b")))

	vtest.ExpectHTML(t, h, `<div><strong>a</strong>b</div>`)
}

func TestChildShapeTransitions(t *testing.T) {
	h := vtest.New(t)

	steps := []struct {
		view *VNode
		want string
	}{
		{Div(Content("hello")), `<div>hello</div>`},
		{Div(Content("hello")), `<div>hello</div>`},
		{Div(Span("a"), Span("b")), `<div><span>a</span><span>b</span></div>`},
		{Div(Content("text")), `<div>text</div>`},
		{Div(), `<div></div>`},
		{Div(Span("c")), `<div><span>c</span></div>`},
		{Div(), `<div></div>`},
	}
	for i, step := range steps {
		h.Render(step.view)
		if got := h.HTML(); got != step.want {
			t.Fatalf("step %d: HTML = %s, want %s", i, got, step.want)
		}
	}
}

func TestFragmentPatchInsertsBeforeFollowingSibling(t *testing.T) {
	h := vtest.New(t)
	h.Render(Ul(Fragment(Li("a"), Li("b")), Li("end")))
	h.Render(Ul(Fragment(Li("a"), Li("b"), Li("c")), Li("end")))

	vtest.ExpectHTML(t, h, `<ul><li>a</li><li>b</li><li>c</li><li>end</li></ul>`)

	h.Render(Ul(Fragment(Li("b")), Li("end")))
	vtest.ExpectHTML(t, h, `<ul><li>b</li><li>end</li></ul>`)
}

func TestEmptyFragmentGrowsInPlace(t *testing.T) {
	view := func(keys ...string) *VNode {
		items := Range(keys, func(_ int, k string) (any, *VNode) { return k, Li(k) })
		return Ul(Li("<"), Fragment(items), Li(">"))
	}

	h := vtest.New(t)
	h.Render(view())
	vtest.ExpectHTML(t, h, `<ul><li>&lt;</li><li>&gt;</li></ul>`)

	h.Render(view("i", "a", "c"))
	vtest.ExpectHTML(t, h, `<ul><li>&lt;</li><li>i</li><li>a</li><li>c</li><li>&gt;</li></ul>`)

	h.Render(view())
	h.Render(Ul(Fragment(Range([]string{"x"}, func(_ int, k string) (any, *VNode) { return k, Li(k) })), Li("end")))
	vtest.ExpectHTML(t, h, `<ul><li>x</li><li>end</li></ul>`)
}

func TestNestedEmptyFragmentGrowsInPlace(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(Fragment(P("a"), Fragment()), P("z")))
	h.Render(Div(Fragment(P("a"), Fragment(P("b"))), P("z")))

	vtest.ExpectHTML(t, h, `<div><p>a</p><p>b</p><p>z</p></div>`)
}

func TestFragmentAtRoot(t *testing.T) {
	h := vtest.New(t)
	h.Render(Fragment(P("1"), P("2")))
	h.Render(Fragment(P("1"), P("2"), P("3")))
	vtest.ExpectHTML(t, h, `<p>1</p><p>2</p><p>3</p>`)

	h.Render(Div("swap"))
	vtest.ExpectHTML(t, h, `<div>swap</div>`)
}

func TestRenderNilUnmounts(t *testing.T) {
	h := vtest.New(t)
	h.Render(Div(P("x")))
	h.Renderer.Render(nil, h.Doc.Body())

	vtest.ExpectHTML(t, h, ``)
	if h.Renderer.Mounted(h.Doc.Body()) != nil {
		t.Error("Mounted should be nil after unmount")
	}

	// Unmounting an empty container is a no-op.
	h.Recorder.Reset()
	h.Renderer.Render(nil, h.Doc.Body())
	if len(h.Recorder.Ops()) != 0 {
		t.Errorf("ops = %v, want none", h.Recorder.Ops())
	}
}

func TestEventHandlerSwap(t *testing.T) {
	var got []string
	view := func(label string) *VNode {
		return Button(OnClick(func() { got = append(got, label) }), "go")
	}

	h := vtest.New(t)
	h.Render(view("first"))
	btn := h.Find("button")
	h.Render(view("second"))

	h.Click(btn)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("handlers called = %v, want [second]", got)
	}
	if h.Recorder.Count(vtest.OpRemove) != 0 {
		t.Error("swapping a handler should not replace the element")
	}
}

func TestHostOpMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))

	h := vtest.New(t, renderer.WithMetrics(m))
	h.Render(Div(P("x")))

	const want = `
		# HELP rendr_host_ops_total Total number of host operations issued by the renderer
		# TYPE rendr_host_ops_total counter
		rendr_host_ops_total{op="create_element"} 2
		rendr_host_ops_total{op="create_text"} 1
		rendr_host_ops_total{op="insert"} 3
	`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "rendr_host_ops_total"); err != nil {
		t.Error(err)
	}
	if n, err := testutil.GatherAndCount(reg, "rendr_render_duration_seconds"); err != nil || n != 1 {
		t.Errorf("render duration series = %d (%v), want 1", n, err)
	}
}
