package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// body is an element text body, produced by Content.
type body string

// Content sets the element's children to a single text body. The renderer
// writes it with one set-element-text operation instead of mounting a text
// child.
func Content(text string) any {
	return body(text)
}

// H creates an element with the given tag.
// Arguments can be: nil, Attr, []Attr, Props, EventHandler, *VNode,
// []*VNode, string (a text child) or Content (a text body).
func H(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// createElement creates a new VNode with the given tag and arguments.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))

		case body:
			node.Text = string(v)
			node.TextBody = true
			node.Children = nil
		}
	}

	return node
}

// setAttr applies one attribute. The key attribute becomes the node key
// and is not kept in Props. Repeated class attributes are merged.
func (v *VNode) setAttr(a Attr) {
	switch a.Key {
	case "":
		return
	case "key":
		v.Key = a.Value
	case "class":
		if prev, ok := v.Props["class"].(string); ok && prev != "" {
			v.Props["class"] = NormalizeClass([]any{prev, a.Value})
			return
		}
		v.Props["class"] = NormalizeClass(a.Value)
	default:
		v.Props[a.Key] = a.Value
	}
}

// =============================================================================
// Element factories
// =============================================================================

// Sectioning
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Grouping
func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Pre(args ...any) *VNode  { return createElement("pre", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }

// Text-level
func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }

// Forms
func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }

// Tables
func Table(args ...any) *VNode { return createElement("table", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }
