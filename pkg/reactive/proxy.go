package reactive

import (
	"fmt"
)

// Kind identifies the shape of container behind a proxy.
type Kind uint8

const (
	// KindRecord is an *Object.
	KindRecord Kind = iota

	// KindSequence is an *Array.
	KindSequence

	// KindSet is a *Set.
	KindSet

	// KindMap is a *Map.
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSequence:
		return "sequence"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// mode selects the behavior of a proxy.
type mode uint8

const (
	modeReactive mode = iota
	modeShallowReactive
	modeReadonly
	modeShallowReadonly
	modeCount
)

func (m mode) shallow() bool  { return m == modeShallowReactive || m == modeShallowReadonly }
func (m mode) readonly() bool { return m == modeReadonly || m == modeShallowReadonly }

// Proxy is implemented by every reactive wrapper.
type Proxy interface {
	// Raw returns the wrapped container.
	Raw() any

	// Kind returns the container shape.
	Kind() Kind

	// IsShallow reports whether nested containers are returned unwrapped.
	IsShallow() bool

	// IsReadonly reports whether writes are rejected.
	IsReadonly() bool

	mode() mode
}

// base holds what all proxy kinds share.
type base struct {
	rt *Runtime
	m  mode
}

func (b *base) IsShallow() bool  { return b.m.shallow() }
func (b *base) IsReadonly() bool { return b.m.readonly() }
func (b *base) mode() mode       { return b.m }

// track records a read unless the proxy is read-only.
func (b *base) track(target, key any) {
	if b.m.readonly() {
		return
	}
	b.rt.Track(target, key)
}

// wrapNested wraps a container read through the proxy in the same
// flavor (reactive or read-only). Shallow proxies return it as is.
func (b *base) wrapNested(v any) any {
	if b.m.shallow() {
		return v
	}
	if b.m.readonly() {
		return b.rt.wrap(v, modeReadonly)
	}
	return b.rt.wrap(v, modeReactive)
}

// rejectWrite logs a write attempted through a read-only proxy.
func (b *base) rejectWrite(op string, key any) {
	b.rt.metrics.ReadonlyViolation()
	b.rt.logger.Warn("write to read-only proxy ignored",
		"op", op,
		"key", fmt.Sprint(key))
}

// Reactive returns the deep reactive proxy for target. Repeated calls with
// the same target return the same proxy. Passing a proxy wraps its raw
// container. Values that are not containers are returned unchanged.
func (rt *Runtime) Reactive(target any) any {
	return rt.wrap(target, modeReactive)
}

// ShallowReactive is like Reactive but nested containers are returned raw.
func (rt *Runtime) ShallowReactive(target any) any {
	return rt.wrap(target, modeShallowReactive)
}

// Readonly returns a proxy that rejects writes and does not track reads.
// Nested containers are returned as read-only proxies.
func (rt *Runtime) Readonly(target any) any {
	return rt.wrap(target, modeReadonly)
}

// ShallowReadonly is like Readonly but nested containers are returned raw.
func (rt *Runtime) ShallowReadonly(target any) any {
	return rt.wrap(target, modeShallowReadonly)
}

// ReactiveObject returns the reactive proxy of o.
func (rt *Runtime) ReactiveObject(o *Object) *ObjectProxy {
	return rt.wrap(o, modeReactive).(*ObjectProxy)
}

// ReactiveArray returns the reactive proxy of a.
func (rt *Runtime) ReactiveArray(a *Array) *ArrayProxy {
	return rt.wrap(a, modeReactive).(*ArrayProxy)
}

// ReactiveSet returns the reactive proxy of s.
func (rt *Runtime) ReactiveSet(s *Set) *SetProxy {
	return rt.wrap(s, modeReactive).(*SetProxy)
}

// ReactiveMap returns the reactive proxy of m.
func (rt *Runtime) ReactiveMap(m *Map) *MapProxy {
	return rt.wrap(m, modeReactive).(*MapProxy)
}

// wrap returns the cached proxy of target in mode m, creating it on first
// use.
func (rt *Runtime) wrap(target any, m mode) any {
	if p, ok := target.(Proxy); ok {
		if p.mode() == m {
			return p
		}
		target = p.Raw()
	}

	cache := rt.proxies[m]
	if p, ok := cache[target]; ok {
		return p
	}

	b := base{rt: rt, m: m}
	var p Proxy
	switch t := target.(type) {
	case *Object:
		if t == nil {
			return target
		}
		p = &ObjectProxy{base: b, raw: t}
	case *Array:
		if t == nil {
			return target
		}
		p = &ArrayProxy{base: b, raw: t}
	case *Set:
		if t == nil {
			return target
		}
		p = &SetProxy{base: b, raw: t}
	case *Map:
		if t == nil {
			return target
		}
		p = &MapProxy{base: b, raw: t}
	default:
		return target
	}
	cache[target] = p
	return p
}

// ToRaw returns the container behind a proxy. Other values are returned
// unchanged.
func ToRaw(v any) any {
	if p, ok := v.(Proxy); ok {
		return p.Raw()
	}
	return v
}

// IsProxy reports whether v is any kind of proxy.
func IsProxy(v any) bool {
	_, ok := v.(Proxy)
	return ok
}

// IsReactive reports whether v is a writable proxy.
func IsReactive(v any) bool {
	p, ok := v.(Proxy)
	return ok && !p.IsReadonly()
}

// IsReadonly reports whether v is a read-only proxy.
func IsReadonly(v any) bool {
	p, ok := v.(Proxy)
	return ok && p.IsReadonly()
}

// isContainer reports whether v is a raw container or a proxy.
func isContainer(v any) bool {
	switch v.(type) {
	case *Object, *Array, *Set, *Map, Proxy:
		return true
	}
	return false
}
