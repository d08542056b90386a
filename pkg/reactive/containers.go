package reactive

import (
	"sort"
)

// The raw containers below are plain data with no reactivity of their own.
// Wrap them with Runtime.Reactive (or one of its variants) to observe them.
// Direct method calls on a raw container are never tracked or triggered.

// Object is a record: string keys in insertion order, with an optional
// prototype consulted for keys the object does not own.
type Object struct {
	keys  []string
	vals  map[string]any
	proto *Object
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// ObjectOf builds an Object from alternating key/value arguments.
// It panics if a key is not a string.
func ObjectOf(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

// ObjectFrom builds an Object from m, with keys in sorted order.
func ObjectFrom(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := NewObject()
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Get returns the value of an own key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Lookup returns the value of key from the object or its prototype chain.
func (o *Object) Lookup(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.vals[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes an own key, appending it to the key order if new.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Has reports whether key is an own key.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Delete removes an own key and reports whether it existed.
func (o *Object) Delete(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the own keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of own keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// SetProto sets the prototype. A nil proto clears it.
func (o *Object) SetProto(proto *Object) {
	o.proto = proto
}

// Proto returns the prototype, or nil.
func (o *Object) Proto() *Object {
	return o.proto
}

// ToMap copies the own keys into a map.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, len(o.vals))
	for k, v := range o.vals {
		m[k] = v
	}
	return m
}

// Array is a sequence of values.
type Array struct {
	items []any
}

// NewArray returns an Array holding items.
func NewArray(items ...any) *Array {
	return &Array{items: append([]any(nil), items...)}
}

// Len returns the length.
func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at i, or nil when i is out of range.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// SetAt writes the element at i, growing the array with nils if needed.
func (a *Array) SetAt(i int, v any) {
	if i < 0 {
		return
	}
	if i >= len(a.items) {
		a.SetLen(i + 1)
	}
	a.items[i] = v
}

// SetLen truncates or extends (with nils) the array to n elements.
func (a *Array) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case n < len(a.items):
		clear(a.items[n:])
		a.items = a.items[:n]
	case n > len(a.items):
		a.items = append(a.items, make([]any, n-len(a.items))...)
	}
}

// Slice returns a copy of the elements.
func (a *Array) Slice() []any {
	return append([]any(nil), a.items...)
}

// Set is an insertion-ordered set of comparable values.
type Set struct {
	items []any
	index map[any]int
}

// NewSet returns a Set holding items. Items must be comparable.
func NewSet(items ...any) *Set {
	s := &Set{index: make(map[any]int)}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.items)
}

// Has reports membership.
func (s *Set) Has(v any) bool {
	_, ok := s.index[v]
	return ok
}

// Add inserts v and reports whether it was new.
func (s *Set) Add(v any) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Delete removes v and reports whether it was present.
func (s *Set) Delete(v any) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Clear removes every member.
func (s *Set) Clear() {
	s.items = nil
	s.index = make(map[any]int)
}

// Values returns the members in insertion order.
func (s *Set) Values() []any {
	return append([]any(nil), s.items...)
}

// Map is an insertion-ordered map with comparable keys.
type Map struct {
	keys  []any
	vals  map[any]any
	index map[any]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[any]any), index: make(map[any]int)}
}

// MapOf builds a Map from alternating key/value arguments.
func MapOf(kv ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Get returns the value for key.
func (m *Map) Get(key any) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	_, ok := m.vals[key]
	return ok
}

// Set writes key, appending it to the key order if new.
func (m *Map) Set(key, v any) {
	if _, ok := m.vals[key]; !ok {
		m.index[key] = len(m.keys)
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key any) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.vals, key)
	delete(m.index, key)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.keys = nil
	m.vals = make(map[any]any)
	m.index = make(map[any]int)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	return append([]any(nil), m.keys...)
}
