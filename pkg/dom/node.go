package dom

import (
	"sort"
	"strings"
)

// NodeType distinguishes elements from text.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Node is an element or a text node.
type Node struct {
	ID   int
	Type NodeType

	// Tag is the lowercase tag name of an element.
	Tag string

	// Text is the content of a text node.
	Text string

	Parent   *Node
	Children []*Node

	// Attrs holds attributes set with setAttribute semantics.
	Attrs map[string]string

	// Props holds DOM properties (value, checked, ...).
	Props map[string]any

	ClassName string

	invokers map[string]*Invoker
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Prop returns a DOM property value, or nil when unset.
func (n *Node) Prop(name string) any {
	return n.Props[name]
}

// Invoker returns the event invoker for an "on" key, if attached.
func (n *Node) Invoker(key string) *Invoker {
	return n.invokers[strings.ToLower(key)]
}

// Listeners returns the names of the events the node listens to, sorted.
func (n *Node) Listeners() []string {
	out := make([]string, 0, len(n.invokers))
	for key := range n.invokers {
		out = append(out, key[2:])
	}
	sort.Strings(out)
	return out
}

// TextContent concatenates the text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var b strings.Builder
	n.walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// Find returns the first descendant element with the given tag, depth
// first, or nil.
func (n *Node) Find(tag string) *Node {
	var found *Node
	n.walk(func(c *Node) bool {
		if c != n && c.Type == ElementNode && c.Tag == tag {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant element with the given tag in document
// order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	n.walk(func(c *Node) bool {
		if c != n && c.Type == ElementNode && c.Tag == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// walk visits n and its descendants in document order until fn returns
// false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// detach removes n from its parent's children.
func (n *Node) detach() {
	p := n.Parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = nil
}
