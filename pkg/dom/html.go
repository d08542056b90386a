package dom

import (
	"sort"
	"strings"

	"github.com/vango-dev/rendr/pkg/vdom"
)

// HTML serializes n and its descendants. Attributes, set properties and
// the class are written in sorted order; listeners are not serialized.
func HTML(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n.Type == TextNode {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range attributes(n) {
		b.WriteByte(' ')
		b.WriteString(a[0])
		if a[1] != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a[1]))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')

	if vdom.IsVoidElement(n.Tag) {
		return
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// attributes merges attributes, properties and class into sorted
// name/value pairs. A false boolean property is omitted; a true one is
// written bare.
func attributes(n *Node) [][2]string {
	set := make(map[string]string, len(n.Attrs)+len(n.Props)+1)
	for k, v := range n.Attrs {
		set[k] = v
	}
	for k, v := range n.Props {
		switch x := v.(type) {
		case bool:
			if x {
				set[k] = ""
			} else {
				delete(set, k)
			}
		case string:
			if x != "" {
				set[k] = x
			}
		}
	}
	if n.ClassName != "" {
		set["class"] = n.ClassName
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, len(keys))
	for i, k := range keys {
		out[i] = [2]string{k, set[k]}
	}
	return out
}

// escapeHTML escapes text for inclusion in element content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for a double-quoted attribute value, including
// whitespace that would break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
