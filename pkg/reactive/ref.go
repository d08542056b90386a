package reactive

import (
	"fmt"
	"sort"

	"github.com/vango-dev/rendr/internal/equal"
)

// refLike is implemented by every value with a single tracked value:
// Ref, ComputedRef and PropRef.
type refLike interface {
	anyValue() any
}

// settable is implemented by refs that accept writes of any value.
type settable interface {
	setAny(v any)
}

// Ref is a single reactive value.
type Ref[T any] struct {
	rt    *Runtime
	value T
}

// NewRef creates a Ref holding v. A Ref holds its value as is; store a
// proxy in it to observe nested changes.
func NewRef[T any](rt *Runtime, v T) *Ref[T] {
	return &Ref[T]{rt: rt, value: v}
}

// Value returns the value, tracking it.
func (r *Ref[T]) Value() T {
	r.rt.Track(r, valueKey)
	return r.value
}

// Peek returns the value without tracking.
func (r *Ref[T]) Peek() T {
	return r.value
}

// Set writes the value, notifying readers if it changed.
func (r *Ref[T]) Set(v T) {
	if !equal.Changed(r.value, v) {
		return
	}
	r.value = v
	r.rt.Trigger(r, valueKey, TriggerSet, v)
}

// Update sets the value to fn applied to the current value. The read is
// not tracked.
func (r *Ref[T]) Update(fn func(T) T) {
	r.Set(fn(r.value))
}

func (r *Ref[T]) anyValue() any {
	return r.Value()
}

func (r *Ref[T]) setAny(v any) {
	if v == nil {
		var zero T
		r.Set(zero)
		return
	}
	tv, ok := v.(T)
	if !ok {
		var zero T
		r.rt.logger.Warn("write to typed ref ignored",
			"want", fmt.Sprintf("%T", any(zero)),
			"got", fmt.Sprintf("%T", v))
		return
	}
	r.Set(tv)
}

// PropRef is a ref bound to one key of a record proxy. Reads and writes go
// through the proxy, so reactivity is preserved when the ref is passed
// around on its own.
type PropRef struct {
	obj *ObjectProxy
	key string
}

// ToRef returns a ref bound to obj[key].
func ToRef(obj *ObjectProxy, key string) *PropRef {
	return &PropRef{obj: obj, key: key}
}

// ToRefs returns a PropRef for every own key of obj. Enumerating the keys
// is not tracked.
func ToRefs(obj *ObjectProxy) map[string]*PropRef {
	keys := obj.raw.Keys()
	out := make(map[string]*PropRef, len(keys))
	for _, k := range keys {
		out[k] = ToRef(obj, k)
	}
	return out
}

// Key returns the bound key.
func (r *PropRef) Key() string {
	return r.key
}

// Value reads obj[key] through the proxy.
func (r *PropRef) Value() any {
	return r.obj.Get(r.key)
}

// Set writes obj[key] through the proxy.
func (r *PropRef) Set(v any) {
	r.obj.Set(r.key, v)
}

func (r *PropRef) anyValue() any { return r.Value() }
func (r *PropRef) setAny(v any)  { r.Set(v) }

// IsRef reports whether v is a Ref, ComputedRef or PropRef.
func IsRef(v any) bool {
	_, ok := v.(refLike)
	return ok
}

// Unref returns the value of a ref, or v itself when v is not a ref.
func Unref(v any) any {
	if r, ok := v.(refLike); ok {
		return r.anyValue()
	}
	return v
}

// RefsView exposes a map of refs as plain values: Get unwraps refs and
// Set writes into an existing ref instead of replacing it.
type RefsView struct {
	entries map[string]any
}

// ProxyRefs returns a view over entries, typically the result of ToRefs
// merged with plain values.
func ProxyRefs[V any](entries map[string]V) *RefsView {
	view := &RefsView{entries: make(map[string]any, len(entries))}
	for k, v := range entries {
		view.entries[k] = v
	}
	return view
}

// Get returns the unwrapped value of key.
func (v *RefsView) Get(key string) any {
	return Unref(v.entries[key])
}

// Set writes key. When key currently holds a writable ref and value is not
// itself a ref, the write goes into the ref.
func (v *RefsView) Set(key string, value any) {
	if cur, ok := v.entries[key].(settable); ok && !IsRef(value) {
		cur.setAny(value)
		return
	}
	v.entries[key] = value
}

// Keys returns the keys in sorted order.
func (v *RefsView) Keys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
