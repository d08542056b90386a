package renderer_test

import (
	"strings"
	"testing"

	. "github.com/vango-dev/rendr/pkg/vdom"

	"github.com/vango-dev/rendr/pkg/vtest"
)

// list renders keyed <li> items whose key and text are the given letters.
// The text is an element body, so mounting an item is one create and one
// insert.
func list(keys ...string) *VNode {
	return Ul(Range(keys, func(_ int, k string) (any, *VNode) {
		return k, Li(Content(k))
	}))
}

func renderedKeys(h *vtest.Harness) string {
	var out []string
	for _, li := range h.Doc.Body().FindAll("li") {
		out = append(out, li.TextContent())
	}
	return strings.Join(out, "")
}

func TestKeyedReorder(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		inserts int
		creates int
		removes int
	}{
		{"rotate right", "abcd", "dabc", 1, 0, 0},
		{"rotate left", "abcd", "bcda", 1, 0, 0},
		{"swap ends", "abcd", "dbca", 2, 0, 0},
		{"reverse", "abcd", "dcba", 3, 0, 0},
		{"identical", "abcd", "abcd", 0, 0, 0},
		{"append", "ab", "abc", 1, 1, 0},
		{"prepend", "bc", "abc", 1, 1, 0},
		{"insert middle", "ac", "abc", 1, 1, 0},
		{"remove middle", "abc", "ac", 0, 0, 1},
		{"remove all", "abc", "", 0, 0, 3},
		{"replace all", "abc", "xyz", 3, 3, 3},
		{"move and add", "abcde", "aecdbf", 3, 1, 0},
		{"move and remove", "abcdefg", "aecdbg", 2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := vtest.New(t)
			h.Render(list(strings.Split(tt.from, "")...))
			h.Recorder.Reset()

			h.Render(list(strings.Split(tt.to, "")...))

			if got := renderedKeys(h); got != tt.to {
				t.Fatalf("rendered %q, want %q", got, tt.to)
			}
			if got := h.Recorder.Count(vtest.OpInsert); got != tt.inserts {
				t.Errorf("inserts = %d, want %d\n%s", got, tt.inserts, h.Recorder)
			}
			if got := h.Recorder.Count(vtest.OpCreateElement); got != tt.creates {
				t.Errorf("element creates = %d, want %d", got, tt.creates)
			}
			if got := h.Recorder.Count(vtest.OpRemove); got != tt.removes {
				t.Errorf("removes = %d, want %d", got, tt.removes)
			}
		})
	}
}

func TestKeyedReorderKeepsNodes(t *testing.T) {
	h := vtest.New(t)
	h.Render(list("a", "b", "c", "d"))
	before := map[string]int{}
	for _, li := range h.Doc.Body().FindAll("li") {
		before[li.TextContent()] = li.ID
	}

	h.Render(list("d", "a", "b", "c"))
	for _, li := range h.Doc.Body().FindAll("li") {
		if before[li.TextContent()] != li.ID {
			t.Errorf("<li>%s</li> was recreated", li.TextContent())
		}
	}
}

func TestKeyedPatchUpdatesMovedContent(t *testing.T) {
	h := vtest.New(t)
	h.Render(Ul(Li(Key(1), "one"), Li(Key(2), "two")))
	h.Render(Ul(Li(Key(2), "TWO"), Li(Key(1), "one")))

	vtest.ExpectHTML(t, h, `<ul><li>TWO</li><li>one</li></ul>`)
}

func TestKeyedDuplicateKeys(t *testing.T) {
	h := vtest.New(t)
	h.Render(Ul(Li(Key("x"), "1"), Li(Key("y"), "2"), Li(Key("x"), "3"), Li(Key("z"), "4")))
	h.Render(Ul(Li(Key("z"), "4"), Li(Key("x"), "1")))

	vtest.ExpectHTML(t, h, `<ul><li>4</li><li>1</li></ul>`)
}

func TestUnkeyedChildrenMatchPositionally(t *testing.T) {
	h := vtest.New(t)
	h.Render(Ul(Li("a"), Li("b"), Li("c")))
	h.Recorder.Reset()

	h.Render(Ul(Li("c"), Li("a")))
	vtest.ExpectHTML(t, h, `<ul><li>c</li><li>a</li></ul>`)

	if got := h.Recorder.Count(vtest.OpInsert); got != 0 {
		t.Errorf("inserts = %d, want 0 for positional patching", got)
	}
	if got := h.Recorder.Count(vtest.OpSetText); got != 2 {
		t.Errorf("set_text = %d, want 2", got)
	}
	if got := h.Recorder.Count(vtest.OpRemove); got != 1 {
		t.Errorf("removes = %d, want 1", got)
	}
}

func TestKeyedFragmentsMove(t *testing.T) {
	item := func(k string) *VNode {
		return Fragment(Key(k), Span(k), Em(strings.ToUpper(k)))
	}

	h := vtest.New(t)
	h.Render(Div(item("a"), item("b"), item("c")))
	h.Render(Div(item("c"), item("a"), item("b")))

	vtest.ExpectHTML(t, h, `<div><span>c</span><em>C</em><span>a</span><em>A</em><span>b</span><em>B</em></div>`)
}

func TestKeyedListInsideFragmentRespectsSibling(t *testing.T) {
	h := vtest.New(t)
	view := func(keys ...string) *VNode {
		items := Range(keys, func(_ int, k string) (any, *VNode) { return k, Li(k) })
		return Ul(Fragment(items), Li("footer"))
	}

	h.Render(view("a", "b"))
	h.Render(view("b", "a", "c"))

	vtest.ExpectHTML(t, h, `<ul><li>b</li><li>a</li><li>c</li><li>footer</li></ul>`)
}
