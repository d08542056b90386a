package renderer

import (
	"github.com/vango-dev/rendr/pkg/telemetry"
)

// Node is an opaque host node handle.
type Node = any

// Host is the platform the renderer mutates. Every mutation the renderer
// performs goes through these operations, so swapping the Host retargets
// rendering (an in-memory document, a recorder in tests, a remote client).
type Host interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) Node

	// CreateText creates a detached text node.
	CreateText(text string) Node

	// SetText replaces the content of a text node.
	SetText(node Node, text string)

	// SetElementText replaces all children of an element with text.
	SetElementText(node Node, text string)

	// Insert places node into parent before anchor, or last when anchor is
	// nil. Inserting an attached node moves it.
	Insert(node, parent, anchor Node)

	// Remove detaches node from its parent.
	Remove(node Node)

	// NextSibling returns the node following node in its parent, or nil.
	NextSibling(node Node) Node

	// PatchProp applies one prop change. prev is the previous value and
	// next the new one; a nil next removes the prop.
	PatchProp(node Node, key string, prev, next any)
}

// instrumentedHost counts host operations.
type instrumentedHost struct {
	Host
	metrics *telemetry.Metrics
}

func (h *instrumentedHost) CreateElement(tag string) Node {
	h.metrics.HostOp("create_element")
	return h.Host.CreateElement(tag)
}

func (h *instrumentedHost) CreateText(text string) Node {
	h.metrics.HostOp("create_text")
	return h.Host.CreateText(text)
}

func (h *instrumentedHost) SetText(node Node, text string) {
	h.metrics.HostOp("set_text")
	h.Host.SetText(node, text)
}

func (h *instrumentedHost) SetElementText(node Node, text string) {
	h.metrics.HostOp("set_element_text")
	h.Host.SetElementText(node, text)
}

func (h *instrumentedHost) Insert(node, parent, anchor Node) {
	h.metrics.HostOp("insert")
	h.Host.Insert(node, parent, anchor)
}

func (h *instrumentedHost) Remove(node Node) {
	h.metrics.HostOp("remove")
	h.Host.Remove(node)
}

func (h *instrumentedHost) PatchProp(node Node, key string, prev, next any) {
	h.metrics.HostOp("patch_prop")
	h.Host.PatchProp(node, key, prev, next)
}
