package renderer

import (
	"slices"
	"sort"
	"strings"

	"github.com/vango-dev/rendr/internal/equal"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// Instance is a mounted component. It implements vdom.SetupContext.
type Instance struct {
	r     *Renderer
	comp  *vdom.Component
	vnode *vdom.VNode

	state *reactive.ObjectProxy
	props *reactive.ObjectProxy
	attrs vdom.Props

	render  func() *vdom.VNode
	subTree *vdom.VNode
	effect  *reactive.Effect

	container Node
	anchor    Node
	mounted   bool

	// syncing suppresses the scheduler while the parent pushes new props;
	// the parent re-renders the instance synchronously afterwards.
	syncing bool

	beforeMount  []func()
	onMounted    []func()
	beforeUpdate []func()
	onUpdated    []func()
	onUnmounted  []func()
}

var _ vdom.SetupContext = (*Instance)(nil)

// State returns the reactive state.
func (inst *Instance) State() *reactive.ObjectProxy { return inst.state }

// Props returns the shallow reactive props.
func (inst *Instance) Props() *reactive.ObjectProxy { return inst.props }

// Attrs returns the undeclared props.
func (inst *Instance) Attrs() vdom.Props { return inst.attrs }

// Runtime returns the reactive runtime.
func (inst *Instance) Runtime() *reactive.Runtime { return inst.r.rt }

// Name returns the component name.
func (inst *Instance) Name() string { return inst.comp.Name }

// SubTree returns the last rendered subtree.
func (inst *Instance) SubTree() *vdom.VNode { return inst.subTree }

// IsMounted reports whether the first render has been patched in.
func (inst *Instance) IsMounted() bool { return inst.mounted }

func (inst *Instance) OnBeforeMount(fn func())  { inst.beforeMount = append(inst.beforeMount, fn) }
func (inst *Instance) OnMounted(fn func())      { inst.onMounted = append(inst.onMounted, fn) }
func (inst *Instance) OnBeforeUpdate(fn func()) { inst.beforeUpdate = append(inst.beforeUpdate, fn) }
func (inst *Instance) OnUpdated(fn func())      { inst.onUpdated = append(inst.onUpdated, fn) }
func (inst *Instance) OnUnmounted(fn func())    { inst.onUnmounted = append(inst.onUnmounted, fn) }

// Emit calls the handler the parent passed for event. Handlers may be
// func(), func(any) or func(...any).
func (inst *Instance) Emit(event string, args ...any) {
	raw := reactive.ToRaw(inst.props).(*reactive.Object)
	h, _ := raw.Get("on" + strings.ToLower(event))

	switch fn := h.(type) {
	case nil:
		inst.r.logger.Debug("emit without handler",
			"component", inst.comp.Name,
			"event", event)
	case func():
		fn()
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		fn(arg)
	case func(...any):
		fn(args...)
	default:
		inst.r.logger.Warn("unsupported handler type",
			"component", inst.comp.Name,
			"event", event)
	}
}

// runHooks calls a declared hook and the registered callbacks without
// tracking.
func (inst *Instance) runHooks(declared func(vdom.RenderContext), registered []func()) {
	if declared == nil && len(registered) == 0 {
		return
	}
	inst.r.rt.Untracked(func() {
		if declared != nil {
			declared(inst)
		}
		for _, fn := range registered {
			fn()
		}
	})
}

// postHooks runs hooks after the current synchronous work, outside the
// render effect, so state changes they make schedule a new render.
func (inst *Instance) postHooks(declared func(vdom.RenderContext), registered []func()) {
	if declared == nil && len(registered) == 0 {
		return
	}
	inst.r.rt.QueueMicrotask(func() {
		inst.runHooks(declared, registered)
	})
}

// mountComponent creates the instance and its render effect. The effect
// runs immediately, mounting the first subtree; later state changes queue
// it on the runtime's job queue.
func (r *Renderer) mountComponent(v *vdom.VNode, container, anchor Node) {
	comp := v.Comp
	inst := &Instance{
		r:         r,
		comp:      comp,
		vnode:     v,
		container: container,
		anchor:    anchor,
	}
	v.Instance = inst

	props, attrs := resolveProps(comp.Props, v.Props)
	inst.props = r.rt.ShallowReactive(reactive.ObjectFrom(props)).(*reactive.ObjectProxy)
	inst.attrs = attrs

	data := map[string]any{}
	if comp.Data != nil {
		data = comp.Data()
	}
	inst.state = r.rt.ReactiveObject(reactive.ObjectFrom(data))

	inst.runHooks(comp.BeforeCreate, nil)
	if comp.Setup != nil {
		r.rt.Untracked(func() {
			inst.render = comp.Setup(inst)
		})
	}
	inst.runHooks(comp.Created, nil)

	if inst.render == nil {
		switch {
		case comp.Func != nil:
			inst.render = func() *vdom.VNode { return comp.Func(inst.propsSnapshot()) }
		case comp.Render != nil:
			inst.render = func() *vdom.VNode { return comp.Render(inst) }
		default:
			inst.render = func() *vdom.VNode { return nil }
		}
	}

	inst.effect = r.rt.Effect(func() any {
		inst.update()
		return nil
	}, reactive.WithScheduler(inst.schedule))
}

func (inst *Instance) schedule(e *reactive.Effect) {
	if inst.syncing {
		return
	}
	inst.r.rt.QueueJob(e)
}

// update renders and patches the subtree. It is the body of the render
// effect.
func (inst *Instance) update() {
	sub := inst.renderRoot()

	if !inst.mounted {
		inst.runHooks(inst.comp.BeforeMount, inst.beforeMount)
		inst.r.patch(nil, sub, inst.container, inst.anchor)
		inst.anchor = nil
		inst.subTree = sub
		inst.mounted = true
		inst.vnode.El = sub.El
		inst.postHooks(inst.comp.Mounted, inst.onMounted)
		return
	}

	inst.runHooks(inst.comp.BeforeUpdate, inst.beforeUpdate)
	prev := inst.subTree
	inst.subTree = sub
	inst.r.patch(prev, sub, inst.container, nil)
	inst.vnode.El = sub.El
	inst.postHooks(inst.comp.Updated, inst.onUpdated)
}

// renderRoot calls the render function and applies fallthrough attrs to
// an element root. A nil result renders as an empty text node.
func (inst *Instance) renderRoot() *vdom.VNode {
	sub := inst.render()
	if sub == nil {
		return vdom.Text("")
	}
	if len(inst.attrs) == 0 || sub.Kind != vdom.KindElement {
		return sub
	}

	merged := make(vdom.Props, len(sub.Props)+len(inst.attrs))
	for k, v := range sub.Props {
		merged[k] = v
	}
	for k, v := range inst.attrs {
		if k == "class" {
			merged[k] = vdom.NormalizeClass([]any{sub.Props["class"], v})
			continue
		}
		merged[k] = v
	}
	sub.Props = merged
	return sub
}

// propsSnapshot reads every prop (tracked) plus the attrs into one map,
// the input of a functional component.
func (inst *Instance) propsSnapshot() vdom.Props {
	out := make(vdom.Props)
	for k, v := range inst.attrs {
		out[k] = v
	}
	for _, k := range inst.props.Keys() {
		out[k] = inst.props.Get(k)
	}
	return out
}

// patchComponent carries the instance over to n2 and, if the props
// changed, pushes them and re-renders synchronously.
func (r *Renderer) patchComponent(n1, n2 *vdom.VNode) {
	inst := n1.Instance.(*Instance)
	n2.Instance = inst
	n2.El = n1.El
	inst.vnode = n2

	changed, handlers := diffProps(n1.Props, n2.Props)
	if !changed {
		if inst.swapHandlers(n2.Props, handlers) {
			inst.effect.Run()
		}
		return
	}

	props, attrs := resolveProps(inst.comp.Props, n2.Props)
	inst.syncing = true
	for _, k := range sortedProps(props) {
		inst.props.Set(k, props[k])
	}
	raw := reactive.ToRaw(inst.props).(*reactive.Object)
	for _, k := range raw.Keys() {
		if _, ok := props[k]; !ok {
			inst.props.Delete(k)
		}
	}
	inst.syncing = false
	inst.attrs = attrs

	inst.effect.Run()
}

func (r *Renderer) unmountComponent(v *vdom.VNode, remove bool) {
	inst, ok := v.Instance.(*Instance)
	if !ok {
		return
	}
	inst.effect.Stop()
	if inst.subTree != nil {
		r.unmount(inst.subTree, remove)
	}
	inst.mounted = false
	inst.runHooks(inst.comp.Unmounted, inst.onUnmounted)
}

// resolveProps splits the props a parent passed into declared props
// (including "on" handlers) and fallthrough attrs.
func resolveProps(declared []string, raw vdom.Props) (map[string]any, vdom.Props) {
	props := make(map[string]any)
	attrs := make(vdom.Props)
	for k, v := range raw {
		if slices.Contains(declared, k) || vdom.IsEventProp(k) {
			props[k] = v
		} else {
			attrs[k] = v
		}
	}
	return props, attrs
}

// diffProps reports whether next differs from prev in its keys or in any
// value. Event handlers count by presence only; those whose value differs
// are returned so the caller can swap them in.
func diffProps(prev, next vdom.Props) (changed bool, handlers []string) {
	if len(prev) != len(next) {
		return true, nil
	}
	for k, v := range next {
		old, ok := prev[k]
		if !ok {
			return true, nil
		}
		if !equal.Changed(old, v) {
			continue
		}
		if !vdom.IsEventProp(k) {
			return true, nil
		}
		handlers = append(handlers, k)
	}
	sort.Strings(handlers)
	return false, handlers
}

// swapHandlers stores new event handlers without re-rendering. Emit reads
// handlers at call time, so only a render that read one of them needs to
// run again; swapHandlers reports whether that is the case.
func (inst *Instance) swapHandlers(next vdom.Props, keys []string) bool {
	rerender := false
	inst.syncing = true
	for _, k := range keys {
		if inst.r.rt.SubscriberCount(inst.props, k) > 0 {
			rerender = true
		}
		inst.props.Set(k, next[k])
	}
	inst.syncing = false
	return rerender
}
