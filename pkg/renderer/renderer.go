// Package renderer mounts and patches vdom trees onto a Host.
//
// A Renderer keeps the last tree rendered into each container. Rendering a
// new tree into the same container patches the difference: elements of the
// same tag are updated in place, keyed children are matched by key and
// moved with the minimum number of host inserts, and components re-render
// through the reactive runtime's job queue when their state changes.
package renderer

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/rendr/internal/equal"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/telemetry"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// Renderer mounts vdom trees onto a Host.
type Renderer struct {
	rt   *reactive.Runtime
	host Host

	// mounted holds the last tree rendered into each container.
	mounted map[Node]*vdom.VNode

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer

	// onError receives failures that no component handled.
	onError func(err error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics counts host operations and render durations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer wraps each Render call in a span.
func WithTracer(t *telemetry.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = t
	}
}

// WithErrorHandler receives errors no component handled, such as an async
// component failure with no error component. The default logs them.
func WithErrorHandler(fn func(err error)) Option {
	return func(r *Renderer) {
		r.onError = fn
	}
}

// New creates a Renderer that drives host and schedules component updates
// on rt.
func New(rt *reactive.Runtime, host Host, opts ...Option) *Renderer {
	r := &Renderer{
		rt:      rt,
		host:    host,
		mounted: make(map[Node]*vdom.VNode),
		logger:  slog.Default().With("component", "renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics != nil {
		r.host = &instrumentedHost{Host: host, metrics: r.metrics}
	}
	if r.onError == nil {
		r.onError = func(err error) {
			r.logger.Error("unhandled render error", "error", err)
		}
	}
	return r
}

// Runtime returns the reactive runtime.
func (r *Renderer) Runtime() *reactive.Runtime {
	return r.rt
}

// Render renders vnode into container. The first call mounts; later calls
// patch against the previous tree. A nil vnode unmounts whatever the
// container holds.
func (r *Renderer) Render(vnode *vdom.VNode, container Node) {
	_, span := r.tracer.Start(context.Background(), "rendr.render",
		attribute.Bool("rendr.unmount", vnode == nil))
	defer span.End()
	start := time.Now()

	prev := r.mounted[container]
	switch {
	case vnode != nil:
		r.patch(prev, vnode, container, nil)
		r.mounted[container] = vnode
	case prev != nil:
		r.unmount(prev, true)
		delete(r.mounted, container)
	}

	r.metrics.ObserveRender(time.Since(start))
}

// Mounted returns the tree last rendered into container.
func (r *Renderer) Mounted(container Node) *vdom.VNode {
	return r.mounted[container]
}

// patch reconciles n1 (the mounted node, or nil) into n2 under container.
// New host nodes are inserted before anchor.
func (r *Renderer) patch(n1, n2 *vdom.VNode, container, anchor Node) {
	if n1 == n2 {
		return
	}
	if n1 != nil && !n1.SameType(n2) {
		if anchor == nil {
			anchor = r.nextHostNode(n1)
		}
		r.unmount(n1, true)
		n1 = nil
	}

	switch n2.Kind {
	case vdom.KindElement:
		if n1 == nil {
			r.mountElement(n2, container, anchor)
		} else {
			r.patchElement(n1, n2)
		}

	case vdom.KindText:
		if n1 == nil {
			n2.El = r.host.CreateText(n2.Text)
			r.host.Insert(n2.El, container, anchor)
		} else {
			n2.El = n1.El
			if n2.Text != n1.Text {
				r.host.SetText(n2.El, n2.Text)
			}
		}

	case vdom.KindFragment:
		if n1 == nil {
			for _, c := range n2.Children {
				r.patch(nil, c, container, anchor)
			}
		} else {
			end := r.nextHostNode(n1)
			if end == nil {
				end = anchor
			}
			r.patchChildren(n1, n2, container, end)
		}
		n2.El = r.firstHostNode(n2)

	case vdom.KindComponent:
		if n1 == nil {
			r.mountComponent(n2, container, anchor)
		} else {
			r.patchComponent(n1, n2)
		}
	}
}

// mountElement creates the element, its children and props, then inserts
// it.
func (r *Renderer) mountElement(v *vdom.VNode, container, anchor Node) {
	el := r.host.CreateElement(v.Tag)
	v.El = el

	switch v.Shape() {
	case vdom.ChildrenText:
		r.host.SetElementText(el, v.Text)
	case vdom.ChildrenList:
		for _, c := range v.Children {
			r.patch(nil, c, el, nil)
		}
	}

	for _, k := range sortedProps(v.Props) {
		r.host.PatchProp(el, k, nil, v.Props[k])
	}

	r.host.Insert(el, container, anchor)
}

// patchElement updates props and children of an element in place.
func (r *Renderer) patchElement(n1, n2 *vdom.VNode) {
	el := n1.El
	n2.El = el

	for _, k := range sortedProps(n2.Props) {
		prev, next := n1.Props[k], n2.Props[k]
		if equal.Changed(prev, next) {
			r.host.PatchProp(el, k, prev, next)
		}
	}
	for _, k := range sortedProps(n1.Props) {
		if _, ok := n2.Props[k]; !ok {
			r.host.PatchProp(el, k, n1.Props[k], nil)
		}
	}

	r.patchChildren(n1, n2, el, nil)
}

// patchChildren reconciles the children of n1 into n2. parentAnchor is the
// host node that follows the children, used when appending; nil means the
// end of container.
func (r *Renderer) patchChildren(n1, n2 *vdom.VNode, container, parentAnchor Node) {
	oldShape, newShape := n1.Shape(), n2.Shape()

	switch newShape {
	case vdom.ChildrenText:
		if oldShape == vdom.ChildrenList {
			for _, c := range n1.Children {
				r.unmount(c, true)
			}
		}
		if oldShape != vdom.ChildrenText || n1.Text != n2.Text {
			r.host.SetElementText(container, n2.Text)
		}

	case vdom.ChildrenList:
		if oldShape == vdom.ChildrenList {
			r.patchKeyedChildren(n1.Children, n2.Children, container, parentAnchor)
			return
		}
		if oldShape == vdom.ChildrenText && n1.Text != "" {
			r.host.SetElementText(container, "")
		}
		for _, c := range n2.Children {
			r.patch(nil, c, container, parentAnchor)
		}

	default:
		switch oldShape {
		case vdom.ChildrenList:
			for _, c := range n1.Children {
				r.unmount(c, true)
			}
		case vdom.ChildrenText:
			if n1.Text != "" {
				r.host.SetElementText(container, "")
			}
		}
	}
}

// unmount tears down v. When remove is false the host nodes are left in
// place because an ancestor's removal takes them along; components below
// are still torn down.
func (r *Renderer) unmount(v *vdom.VNode, remove bool) {
	switch v.Kind {
	case vdom.KindFragment:
		for _, c := range v.Children {
			r.unmount(c, remove)
		}
	case vdom.KindComponent:
		r.unmountComponent(v, remove)
	case vdom.KindElement:
		for _, c := range v.Children {
			r.unmount(c, false)
		}
		if remove && v.El != nil {
			r.host.Remove(v.El)
		}
	default:
		if remove && v.El != nil {
			r.host.Remove(v.El)
		}
	}
}

// move re-inserts the host nodes of v before anchor.
func (r *Renderer) move(v *vdom.VNode, container, anchor Node) {
	switch v.Kind {
	case vdom.KindFragment:
		for _, c := range v.Children {
			r.move(c, container, anchor)
		}
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst.subTree != nil {
			r.move(inst.subTree, container, anchor)
		}
	default:
		r.host.Insert(v.El, container, anchor)
	}
}

// firstHostNode returns the first host node v occupies, or nil.
func (r *Renderer) firstHostNode(v *vdom.VNode) Node {
	switch v.Kind {
	case vdom.KindFragment:
		for _, c := range v.Children {
			if n := r.firstHostNode(c); n != nil {
				return n
			}
		}
		return nil
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst.subTree != nil {
			return r.firstHostNode(inst.subTree)
		}
		return nil
	default:
		return v.El
	}
}

// nextHostNode returns the host node after the last one v occupies, or nil.
func (r *Renderer) nextHostNode(v *vdom.VNode) Node {
	switch v.Kind {
	case vdom.KindFragment:
		if n := len(v.Children); n > 0 {
			return r.nextHostNode(v.Children[n-1])
		}
		return nil
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst.subTree != nil {
			return r.nextHostNode(inst.subTree)
		}
		return nil
	default:
		if v.El == nil {
			return nil
		}
		return r.host.NextSibling(v.El)
	}
}

func sortedProps(props vdom.Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
