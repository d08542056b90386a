package vtest

import (
	"fmt"
	"strings"

	"github.com/vango-dev/rendr/pkg/renderer"
)

// Host operation names.
const (
	OpCreateElement  = "create_element"
	OpCreateText     = "create_text"
	OpSetText        = "set_text"
	OpSetElementText = "set_element_text"
	OpInsert         = "insert"
	OpRemove         = "remove"
	OpNextSibling    = "next_sibling"
	OpPatchProp      = "patch_prop"
)

// Op is one recorded host operation.
type Op struct {
	Name   string
	Node   renderer.Node
	Parent renderer.Node
	Anchor renderer.Node
	Tag    string
	Text   string
	Key    string
	Prev   any
	Next   any
}

// String renders the op for failure messages.
func (o Op) String() string {
	switch o.Name {
	case OpCreateElement:
		return fmt.Sprintf("%s <%s>", o.Name, o.Tag)
	case OpCreateText, OpSetText, OpSetElementText:
		return fmt.Sprintf("%s %q", o.Name, o.Text)
	case OpPatchProp:
		return fmt.Sprintf("%s %s", o.Name, o.Key)
	default:
		return o.Name
	}
}

// Recorder is a renderer.Host that records operations and forwards them
// to an inner host.
type Recorder struct {
	host renderer.Host
	ops  []Op
}

var _ renderer.Host = (*Recorder)(nil)

// NewRecorder wraps host.
func NewRecorder(host renderer.Host) *Recorder {
	return &Recorder{host: host}
}

// Ops returns the recorded operations. NextSibling queries are included.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Mutations returns the recorded operations that change the tree.
func (r *Recorder) Mutations() []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Name != OpNextSibling {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many operations named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded operations.
func (r *Recorder) Reset() {
	r.ops = nil
}

// String lists the mutations one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Mutations() {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) CreateElement(tag string) renderer.Node {
	n := r.host.CreateElement(tag)
	r.ops = append(r.ops, Op{Name: OpCreateElement, Node: n, Tag: tag})
	return n
}

func (r *Recorder) CreateText(text string) renderer.Node {
	n := r.host.CreateText(text)
	r.ops = append(r.ops, Op{Name: OpCreateText, Node: n, Text: text})
	return n
}

func (r *Recorder) SetText(node renderer.Node, text string) {
	r.ops = append(r.ops, Op{Name: OpSetText, Node: node, Text: text})
	r.host.SetText(node, text)
}

func (r *Recorder) SetElementText(node renderer.Node, text string) {
	r.ops = append(r.ops, Op{Name: OpSetElementText, Node: node, Text: text})
	r.host.SetElementText(node, text)
}

func (r *Recorder) Insert(node, parent, anchor renderer.Node) {
	r.ops = append(r.ops, Op{Name: OpInsert, Node: node, Parent: parent, Anchor: anchor})
	r.host.Insert(node, parent, anchor)
}

func (r *Recorder) Remove(node renderer.Node) {
	r.ops = append(r.ops, Op{Name: OpRemove, Node: node})
	r.host.Remove(node)
}

func (r *Recorder) NextSibling(node renderer.Node) renderer.Node {
	r.ops = append(r.ops, Op{Name: OpNextSibling, Node: node})
	return r.host.NextSibling(node)
}

func (r *Recorder) PatchProp(node renderer.Node, key string, prev, next any) {
	r.ops = append(r.ops, Op{Name: OpPatchProp, Node: node, Key: key, Prev: prev, Next: next})
	r.host.PatchProp(node, key, prev, next)
}
