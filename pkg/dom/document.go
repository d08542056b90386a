package dom

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/rendr/pkg/renderer"
)

// Document owns a node tree rooted at a body element.
type Document struct {
	nextID   int
	clock    int64
	nodes    map[int]*Node
	body     *Node
	observer Observer
	logger   *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithObserver sets the mutation observer.
func WithObserver(fn Observer) Option {
	return func(d *Document) {
		d.observer = fn
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		nodes: make(map[int]*Node),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.logger = d.logger.With("component", "dom")
	d.body = d.newNode(ElementNode)
	d.body.Tag = "body"
	return d
}

// Body returns the root element. Its ID is always 1.
func (d *Document) Body() *Node {
	return d.body
}

// Observe replaces the mutation observer. A nil fn stops observing.
func (d *Document) Observe(fn Observer) {
	d.observer = fn
}

// NodeByID returns a node that is attached or was created and not yet
// removed.
func (d *Document) NodeByID(id int) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Now advances the document clock and returns it. Event timestamps and
// invoker attach times are taken from this clock.
func (d *Document) Now() int64 {
	d.clock++
	return d.clock
}

func (d *Document) newNode(t NodeType) *Node {
	d.nextID++
	n := &Node{
		ID:    d.nextID,
		Type:  t,
		Attrs: make(map[string]string),
		Props: make(map[string]any),
	}
	d.nodes[n.ID] = n
	return n
}

func (d *Document) emit(m Mutation) {
	if d.observer != nil {
		d.observer(m)
	}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	n := d.newNode(ElementNode)
	n.Tag = tag
	d.emit(Mutation{Op: OpCreateElement, ID: n.ID, Tag: tag})
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	n := d.newNode(TextNode)
	n.Text = text
	d.emit(Mutation{Op: OpCreateText, ID: n.ID, Text: text})
	return n
}

// SetText replaces the content of a text node.
func (d *Document) SetText(n *Node, text string) {
	n.Text = text
	d.emit(Mutation{Op: OpSetText, ID: n.ID, Text: text})
}

// SetElementText replaces the children of an element with a single text
// node, or with nothing when text is empty.
func (d *Document) SetElementText(n *Node, text string) {
	for _, c := range n.Children {
		c.Parent = nil
		d.forget(c)
	}
	n.Children = nil

	m := Mutation{Op: OpSetElementText, ID: n.ID, Text: text}
	if text != "" {
		t := d.newNode(TextNode)
		t.Text = text
		t.Parent = n
		n.Children = []*Node{t}
		m.Child = t.ID
	}
	d.emit(m)
}

// Insert places n into parent before anchor, or last when anchor is nil.
// An attached node is moved.
func (d *Document) Insert(n, parent, anchor *Node) {
	if n == anchor {
		return
	}
	n.detach()

	i := len(parent.Children)
	if anchor != nil {
		i = parent.indexOf(anchor)
		if i < 0 {
			panic(fmt.Sprintf("dom: anchor %d is not a child of %d", anchor.ID, parent.ID))
		}
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[i+1:], parent.Children[i:])
	parent.Children[i] = n
	n.Parent = parent

	m := Mutation{Op: OpInsert, ID: n.ID, Parent: parent.ID}
	if anchor != nil {
		m.Anchor = anchor.ID
	}
	d.emit(m)
}

// Remove detaches n and forgets it and its descendants.
func (d *Document) Remove(n *Node) {
	n.detach()
	d.forget(n)
	d.emit(Mutation{Op: OpRemove, ID: n.ID})
}

func (d *Document) forget(n *Node) {
	n.walk(func(c *Node) bool {
		delete(d.nodes, c.ID)
		return true
	})
}

// NextSibling returns the node after n in its parent, or nil.
func (d *Document) NextSibling(n *Node) *Node {
	p := n.Parent
	if p == nil {
		return nil
	}
	i := p.indexOf(n)
	if i < 0 || i+1 >= len(p.Children) {
		return nil
	}
	return p.Children[i+1]
}

// Host returns the renderer.Host view of the document.
func (d *Document) Host() renderer.Host {
	return host{d}
}

// host adapts Document to renderer.Host, whose nodes are untyped.
type host struct {
	d *Document
}

var _ renderer.Host = host{}

func (h host) CreateElement(tag string) renderer.Node { return h.d.CreateElement(tag) }
func (h host) CreateText(text string) renderer.Node   { return h.d.CreateText(text) }

func (h host) SetText(n renderer.Node, text string) { h.d.SetText(n.(*Node), text) }

func (h host) SetElementText(n renderer.Node, text string) { h.d.SetElementText(n.(*Node), text) }

func (h host) Insert(n, parent, anchor renderer.Node) {
	var a *Node
	if anchor != nil {
		a = anchor.(*Node)
	}
	h.d.Insert(n.(*Node), parent.(*Node), a)
}

func (h host) Remove(n renderer.Node) { h.d.Remove(n.(*Node)) }

func (h host) NextSibling(n renderer.Node) renderer.Node {
	if next := h.d.NextSibling(n.(*Node)); next != nil {
		return next
	}
	return nil
}

func (h host) PatchProp(n renderer.Node, key string, prev, next any) {
	h.d.PatchProp(n.(*Node), key, prev, next)
}
