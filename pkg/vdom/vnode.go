package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ChildShape describes how an element holds its children.
type ChildShape uint8

const (
	ChildrenNone ChildShape = iota // No children
	ChildrenText                   // A single text body (Text)
	ChildrenList                   // A list of child nodes (Children)
)

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind      // Node type
	Tag      string     // Element tag name (e.g., "div")
	Props    Props      // Attributes, properties and event handlers
	Children []*VNode   // Child nodes
	Text     string     // Text node content, or element text body
	TextBody bool       // Element children are the string in Text
	Key      any        // Reconciliation key
	Comp     *Component // For KindComponent

	// El is the host node this vnode is mounted as. For fragments it is the
	// host node of the first child; for components, of the rendered root.
	// Set by the renderer.
	El any

	// Instance is the component instance. Set by the renderer.
	Instance any
}

// Props holds attributes and event handlers.
type Props map[string]any

// Shape reports how the node holds its children.
func (v *VNode) Shape() ChildShape {
	switch {
	case v.TextBody:
		return ChildrenText
	case v.Children != nil:
		return ChildrenList
	default:
		return ChildrenNone
	}
}

// SameType reports whether v and o can be patched in place: same kind and,
// for elements, the same tag, for components, the same descriptor.
func (v *VNode) SameType(o *VNode) bool {
	if v == nil || o == nil || v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindElement:
		return v.Tag == o.Tag
	case KindComponent:
		return v.Comp == o.Comp
	}
	return true
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if IsEventProp(key) {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
