package vdom

import "testing"

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "foo bar", "foo bar"},
		{"nil", nil, ""},
		{"trimmed", "  foo ", "foo"},
		{"slice", []string{"a", "", "b"}, "a b"},
		{"nested", []any{"a", []any{"b", map[string]bool{"c": true}}}, "a b c"},
		{"bool map", map[string]bool{"on": true, "off": false}, "on"},
		{"sorted map", map[string]any{"z": 1, "a": "yes", "n": 0}, "a z"},
		{"other", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeClass(tt.in); got != tt.want {
				t.Errorf("NormalizeClass(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassAttrMerges(t *testing.T) {
	node := Div(Class("a", []string{"b"}), Class(map[string]bool{"c": true}))
	if got := node.Props["class"]; got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
}

func TestEventNames(t *testing.T) {
	if h := On("KeyUp", nil); h.Event != "onkeyup" {
		t.Errorf("On(KeyUp).Event = %q, want onkeyup", h.Event)
	}
	if !IsEventProp("onClick") || IsEventProp("on") || IsEventProp("class") {
		t.Error("IsEventProp")
	}
	if got := EventName("onClick"); got != "click" {
		t.Errorf("EventName = %q, want click", got)
	}
}
