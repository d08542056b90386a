package reactive

import (
	"github.com/vango-dev/rendr/internal/equal"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// SetProxy observes a *Set. Membership reads track the member; size and
// enumeration track the whole set. Add and Delete notify only when
// membership actually changes.
type SetProxy struct {
	base
	raw *Set
}

// Raw returns the wrapped *Set.
func (p *SetProxy) Raw() any { return p.raw }

// Kind returns KindSet.
func (p *SetProxy) Kind() Kind { return KindSet }

// Size returns the number of members.
func (p *SetProxy) Size() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}

// Has reports membership of v.
func (p *SetProxy) Has(v any) bool {
	v = ToRaw(v)
	p.track(p.raw, v)
	return p.raw.Has(v)
}

// Add inserts v and returns the proxy.
func (p *SetProxy) Add(v any) *SetProxy {
	if p.m.readonly() {
		p.rejectWrite("add", v)
		return p
	}
	v = ToRaw(v)
	if p.raw.Add(v) {
		p.rt.Trigger(p.raw, v, TriggerAdd, v)
	}
	return p
}

// Delete removes v and reports whether it was a member.
func (p *SetProxy) Delete(v any) bool {
	if p.m.readonly() {
		p.rejectWrite("delete", v)
		return false
	}
	v = ToRaw(v)
	if !p.raw.Delete(v) {
		return false
	}
	p.rt.Trigger(p.raw, v, TriggerDelete, nil)
	return true
}

// Clear removes every member.
func (p *SetProxy) Clear() {
	if p.m.readonly() {
		p.rejectWrite("clear", nil)
		return
	}
	if p.raw.Len() == 0 {
		return
	}
	p.raw.Clear()
	p.rt.Trigger(p.raw, nil, TriggerClear, nil)
}

// Values returns the members in insertion order.
func (p *SetProxy) Values() []any {
	p.track(p.raw, iterateKey)
	out := p.raw.Values()
	for i, v := range out {
		out[i] = p.wrapNested(v)
	}
	return out
}

// ForEach calls fn for every member.
func (p *SetProxy) ForEach(fn func(value any)) {
	for _, v := range p.Values() {
		fn(v)
	}
}

// MapProxy observes a *Map.
//
// Replacing a value counts as a change to enumeration, since Values,
// Entries and ForEach expose values. Keys subscribes to a separate
// key-enumeration pseudo-key that only additions and deletions notify.
type MapProxy struct {
	base
	raw *Map
}

// Raw returns the wrapped *Map.
func (p *MapProxy) Raw() any { return p.raw }

// Kind returns KindMap.
func (p *MapProxy) Kind() Kind { return KindMap }

// Size returns the number of entries.
func (p *MapProxy) Size() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}

// Get reads key.
func (p *MapProxy) Get(key any) any {
	key = ToRaw(key)
	p.track(p.raw, key)
	v, _ := p.raw.Get(key)
	return p.wrapNested(v)
}

// Has reports whether key is present.
func (p *MapProxy) Has(key any) bool {
	key = ToRaw(key)
	p.track(p.raw, key)
	return p.raw.Has(key)
}

// Set writes key and returns the proxy. A new key is an addition; a
// changed value on an existing key is a replacement.
func (p *MapProxy) Set(key, value any) *MapProxy {
	if p.m.readonly() {
		p.rejectWrite("set", key)
		return p
	}
	key = ToRaw(key)
	value = ToRaw(value)

	old, had := p.raw.Get(key)
	p.raw.Set(key, value)
	switch {
	case !had:
		p.rt.Trigger(p.raw, key, TriggerAdd, value)
	case equal.Changed(old, value):
		p.rt.Trigger(p.raw, key, TriggerSet, value)
	}
	return p
}

// Delete removes key and reports whether it was present.
func (p *MapProxy) Delete(key any) bool {
	if p.m.readonly() {
		p.rejectWrite("delete", key)
		return false
	}
	key = ToRaw(key)
	if !p.raw.Delete(key) {
		return false
	}
	p.rt.Trigger(p.raw, key, TriggerDelete, nil)
	return true
}

// Clear removes every entry.
func (p *MapProxy) Clear() {
	if p.m.readonly() {
		p.rejectWrite("clear", nil)
		return
	}
	if p.raw.Len() == 0 {
		return
	}
	p.raw.Clear()
	p.rt.Trigger(p.raw, nil, TriggerClear, nil)
}

// Keys returns the keys in insertion order. It is not notified when only
// values change.
func (p *MapProxy) Keys() []any {
	p.track(p.raw, mapKeyIterateKey)
	out := p.raw.Keys()
	for i, k := range out {
		out[i] = p.wrapNested(k)
	}
	return out
}

// Values returns the values in key order.
func (p *MapProxy) Values() []any {
	p.track(p.raw, iterateKey)
	keys := p.raw.Keys()
	out := make([]any, len(keys))
	for i, k := range keys {
		v, _ := p.raw.Get(k)
		out[i] = p.wrapNested(v)
	}
	return out
}

// Entries returns the key/value pairs in key order.
func (p *MapProxy) Entries() []Entry {
	p.track(p.raw, iterateKey)
	keys := p.raw.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		v, _ := p.raw.Get(k)
		out[i] = Entry{Key: p.wrapNested(k), Value: p.wrapNested(v)}
	}
	return out
}

// ForEach calls fn for every entry in key order.
func (p *MapProxy) ForEach(fn func(value, key any)) {
	for _, e := range p.Entries() {
		fn(e.Value, e.Key)
	}
}
