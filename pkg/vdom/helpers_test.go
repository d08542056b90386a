package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFragment(t *testing.T) {
	node := Fragment(Key("f"), Div(), nil, "text", []*VNode{Span(), nil})
	if node.Kind != KindFragment {
		t.Fatalf("Kind = %v, want Fragment", node.Kind)
	}
	if node.Key != "f" {
		t.Errorf("Key = %v, want f", node.Key)
	}
	if len(node.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(node.Children))
	}
	if node.Children[1].Kind != KindText || node.Children[1].Text != "text" {
		t.Errorf("Children[1] = %+v, want text node", node.Children[1])
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "skip", "c"}
	nodes := Range(items, func(i int, s string) (any, *VNode) {
		if s == "skip" {
			return nil, nil
		}
		return s, Li(Text(s))
	})

	var keys []any
	for _, n := range nodes {
		keys = append(keys, n.Key)
	}
	if diff := cmp.Diff([]any{"a", "c"}, keys); diff != "" {
		t.Errorf("Range keys mismatch (-want +got):\n%s", diff)
	}
}

func TestConditionals(t *testing.T) {
	a, b := Div(), Span()

	if If(true, a) != a || If(false, a) != nil {
		t.Error("If")
	}
	if IfElse(false, a, b) != b {
		t.Error("IfElse")
	}
	if Unless(true, a) != nil {
		t.Error("Unless")
	}
	called := false
	When(false, func() *VNode { called = true; return a })
	if called {
		t.Error("When evaluated a false branch")
	}
}

func TestSwitch(t *testing.T) {
	a, b, d := Div(), Span(), P()

	if got := Switch(2, Case_(1, a), Case_(2, b), Default[int](d)); got != b {
		t.Errorf("Switch(2) = %v, want b", got)
	}
	if got := Switch(9, Default[int](d), Case_(1, a)); got != d {
		t.Errorf("Switch(9) = %v, want default", got)
	}
	if got := Switch(9, Case_(1, a)); got != nil {
		t.Errorf("Switch without default = %v, want nil", got)
	}
}
