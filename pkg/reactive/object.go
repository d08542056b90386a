package reactive

import (
	"github.com/vango-dev/rendr/internal/equal"
)

// ObjectProxy observes an *Object.
//
// Reads of keys the object does not own continue into the prototype, which
// is observed through its own proxy, so an effect reading an inherited key
// depends on both objects. Writes of inherited keys land on the object
// that received the write, and only that object notifies.
type ObjectProxy struct {
	base
	raw *Object
}

// Raw returns the wrapped *Object.
func (p *ObjectProxy) Raw() any { return p.raw }

// Kind returns KindRecord.
func (p *ObjectProxy) Kind() Kind { return KindRecord }

// protoProxy returns the proxy of the prototype in the same mode, or nil.
func (p *ObjectProxy) protoProxy() *ObjectProxy {
	if p.raw.proto == nil {
		return nil
	}
	return p.rt.wrap(p.raw.proto, p.m).(*ObjectProxy)
}

// Get reads key, tracking it.
func (p *ObjectProxy) Get(key string) any {
	p.track(p.raw, key)
	v, ok := p.raw.Get(key)
	if !ok {
		if parent := p.protoProxy(); parent != nil {
			return parent.Get(key)
		}
		return nil
	}
	return p.wrapNested(v)
}

// Object reads key and returns it as a record proxy, or nil if the value
// is not a record.
func (p *ObjectProxy) Object(key string) *ObjectProxy {
	v, _ := p.Get(key).(*ObjectProxy)
	return v
}

// Array reads key and returns it as a sequence proxy, or nil if the value
// is not a sequence.
func (p *ObjectProxy) Array(key string) *ArrayProxy {
	v, _ := p.Get(key).(*ArrayProxy)
	return v
}

// Set writes key. Proxies are stored unwrapped. Subscribers of key are
// notified when the key is new or its value changed. On a read-only proxy
// the write is dropped with a warning and Set still returns true.
func (p *ObjectProxy) Set(key string, value any) bool {
	return p.set(key, value, p)
}

func (p *ObjectProxy) set(key string, value any, receiver *ObjectProxy) bool {
	if p.m.readonly() {
		p.rejectWrite("set", key)
		return true
	}

	value = ToRaw(value)
	old, _ := p.raw.Lookup(key)
	kind := TriggerSet
	if !p.raw.Has(key) {
		kind = TriggerAdd
	}

	parent := p.protoProxy()
	shadows := kind == TriggerAdd && parent != nil && parent.raw.hasInChain(key)
	if shadows {
		// Relay through the prototype that owns the key. The write still
		// lands on the receiver.
		parent.set(key, value, receiver)
	} else {
		receiver.raw.Set(key, value)
	}

	// Only the object that received the write reports it.
	if receiver.raw != p.raw {
		return true
	}
	switch {
	case shadows && !equal.Changed(old, value):
		// The visible value is the same; only the own key set grew.
		p.rt.Trigger(p.raw, iterateKey, TriggerSet, nil)
	case kind == TriggerAdd || equal.Changed(old, value):
		p.rt.Trigger(p.raw, key, kind, value)
	}
	return true
}

// Has reports whether key is present on the object or its prototype
// chain, tracking it.
func (p *ObjectProxy) Has(key string) bool {
	p.track(p.raw, key)
	if p.raw.Has(key) {
		return true
	}
	if parent := p.protoProxy(); parent != nil {
		return parent.Has(key)
	}
	return false
}

// Delete removes an own key. Subscribers are notified only if the key
// existed.
func (p *ObjectProxy) Delete(key string) bool {
	if p.m.readonly() {
		p.rejectWrite("delete", key)
		return true
	}
	if p.raw.Delete(key) {
		p.rt.Trigger(p.raw, key, TriggerDelete, nil)
	}
	return true
}

// Keys returns the own keys in insertion order, subscribing to key
// additions and removals.
func (p *ObjectProxy) Keys() []string {
	p.track(p.raw, iterateKey)
	return p.raw.Keys()
}

// Len returns the number of own keys, subscribing like Keys.
func (p *ObjectProxy) Len() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}

// ForEach calls fn for every own key in order. Each value read is tracked.
func (p *ObjectProxy) ForEach(fn func(key string, value any)) {
	for _, k := range p.Keys() {
		fn(k, p.Get(k))
	}
}

// SetProto sets the prototype of the wrapped object.
func (p *ObjectProxy) SetProto(proto any) {
	o, _ := ToRaw(proto).(*Object)
	p.raw.SetProto(o)
}

func (o *Object) hasInChain(key string) bool {
	_, ok := o.Lookup(key)
	return ok
}
