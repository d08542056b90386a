package dom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/rendr/pkg/vdom"
)

// propKind is the type of a DOM property.
type propKind uint8

const (
	stringProp propKind = iota
	boolProp
)

// globalProps are properties every element has.
var globalProps = map[string]propKind{
	"id":     stringProp,
	"title":  stringProp,
	"hidden": boolProp,
}

// elementProps are the properties specific to form elements.
var elementProps = map[string]map[string]propKind{
	"input": {
		"value":       stringProp,
		"checked":     boolProp,
		"disabled":    boolProp,
		"type":        stringProp,
		"name":        stringProp,
		"placeholder": stringProp,
		"form":        stringProp,
	},
	"textarea": {
		"value":       stringProp,
		"disabled":    boolProp,
		"name":        stringProp,
		"placeholder": stringProp,
	},
	"select": {
		"value":    stringProp,
		"disabled": boolProp,
		"name":     stringProp,
	},
	"option": {
		"value":    stringProp,
		"selected": boolProp,
		"disabled": boolProp,
	},
	"button": {
		"value":    stringProp,
		"disabled": boolProp,
		"type":     stringProp,
		"name":     stringProp,
	},
}

// propertyKind reports whether key is set as a DOM property on n. An
// input's form property is read-only and goes through the attribute.
func propertyKind(n *Node, key string) (propKind, bool) {
	if n.Tag == "input" && key == "form" {
		return 0, false
	}
	if k, ok := elementProps[n.Tag][key]; ok {
		return k, true
	}
	k, ok := globalProps[key]
	return k, ok
}

// PatchProp applies one prop change to an element.
func (d *Document) PatchProp(n *Node, key string, prev, next any) {
	switch {
	case vdom.IsEventProp(key):
		d.patchEvent(n, strings.ToLower(key), next)

	case key == "class":
		n.ClassName = vdom.NormalizeClass(next)
		d.emit(Mutation{Op: OpSetClass, ID: n.ID, Value: n.ClassName})

	default:
		if kind, ok := propertyKind(n, key); ok {
			v := coerceProp(kind, next)
			n.Props[key] = v
			d.emit(Mutation{Op: OpSetProp, ID: n.ID, Name: key, Value: v})
			return
		}
		d.patchAttr(n, key, next)
	}
}

// coerceProp converts a prop value to the property's type. Any string,
// including the empty one, enables a boolean property, matching
// `<input disabled>`.
func coerceProp(kind propKind, v any) any {
	if kind == boolProp {
		switch b := v.(type) {
		case bool:
			return b
		case nil:
			return false
		case string:
			return true
		default:
			return !isZeroNumber(b)
		}
	}
	if v == nil {
		return ""
	}
	return attrString(v)
}

// isZeroNumber reports whether v is a numeric zero.
func isZeroNumber(v any) bool {
	switch n := v.(type) {
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	}
	return false
}

func (d *Document) patchAttr(n *Node, key string, next any) {
	if next == nil || next == false {
		if _, ok := n.Attrs[key]; !ok {
			return
		}
		delete(n.Attrs, key)
		d.emit(Mutation{Op: OpRemoveAttr, ID: n.ID, Name: key})
		return
	}
	v := attrString(next)
	n.Attrs[key] = v
	d.emit(Mutation{Op: OpSetAttr, ID: n.ID, Name: key, Value: v})
}

// attrString converts a value to its attribute text.
func attrString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return ""
		}
		return "false"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
