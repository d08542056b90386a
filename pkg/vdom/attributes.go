package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the reconciliation key. Keys must be comparable.
func Key(key any) Attr { return attr("key", key) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Each argument may be a string, a slice
// of class values or a map of class name to condition; see NormalizeClass.
func Class(classes ...any) Attr { return attr("class", NormalizeClass(classes)) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled property.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Hidden sets the hidden property.
func Hidden(hidden bool) Attr { return attr("hidden", hidden) }

// FormAttr sets the form attribute of an input.
func FormAttr(id string) Attr { return attr("form", id) }

// AttrOf sets an arbitrary attribute.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// NormalizeClass flattens a class value into a space-separated string.
//
//	"a b"                               -> "a b"
//	[]any{"a", []string{"b"}}           -> "a b"
//	map[string]bool{"on": true, "x": false} -> "on"
//
// Map keys are emitted in sorted order. Empty entries are dropped.
func NormalizeClass(v any) string {
	var parts []string
	appendClass(&parts, v)
	return strings.Join(parts, " ")
}

func appendClass(parts *[]string, v any) {
	switch c := v.(type) {
	case nil:
	case string:
		if c = strings.TrimSpace(c); c != "" {
			*parts = append(*parts, c)
		}
	case []string:
		for _, s := range c {
			appendClass(parts, s)
		}
	case []any:
		for _, item := range c {
			appendClass(parts, item)
		}
	case map[string]bool:
		for _, k := range sortedClassKeys(c) {
			if c[k] {
				appendClass(parts, k)
			}
		}
	case map[string]any:
		for _, k := range sortedClassKeys(c) {
			if truthy(c[k]) {
				appendClass(parts, k)
			}
		}
	default:
		appendClass(parts, fmt.Sprint(c))
	}
}

func sortedClassKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truthy reports whether v counts as set: non-nil, not false, not zero,
// not the empty string.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}
