package reactive

import (
	"github.com/vango-dev/rendr/internal/equal"
)

// ArrayProxy observes an *Array.
//
// Index reads track the index, Len tracks the length. Writing past the end
// grows the sequence and counts as an addition. The mutating helpers (Push,
// Pop, Shift, Unshift, Splice) read the length untracked, so an effect
// that pushes never subscribes to the length it changes.
type ArrayProxy struct {
	base
	raw *Array
}

// Raw returns the wrapped *Array.
func (p *ArrayProxy) Raw() any { return p.raw }

// Kind returns KindSequence.
func (p *ArrayProxy) Kind() Kind { return KindSequence }

// At reads index i, tracking it. Out of range reads return nil.
func (p *ArrayProxy) At(i int) any {
	p.track(p.raw, i)
	return p.wrapNested(p.raw.At(i))
}

// Len returns the length, tracking it.
func (p *ArrayProxy) Len() int {
	p.track(p.raw, lengthKey)
	return p.raw.Len()
}

// Set writes index i. An index at or beyond the length grows the sequence
// and is reported as an addition. Negative indices are ignored.
func (p *ArrayProxy) Set(i int, value any) bool {
	if p.m.readonly() {
		p.rejectWrite("set", i)
		return true
	}
	if i < 0 {
		return false
	}

	value = ToRaw(value)
	old := p.raw.At(i)
	kind := TriggerSet
	if i >= p.raw.Len() {
		kind = TriggerAdd
	}
	p.raw.SetAt(i, value)
	if kind == TriggerAdd || equal.Changed(old, value) {
		p.rt.Trigger(p.raw, i, kind, value)
	}
	return true
}

// SetLen truncates or extends the sequence. Subscribers of the length and
// of every index at or beyond n are notified.
func (p *ArrayProxy) SetLen(n int) bool {
	if p.m.readonly() {
		p.rejectWrite("set", lengthKey)
		return true
	}
	if n < 0 {
		n = 0
	}
	if n == p.raw.Len() {
		return true
	}
	p.raw.SetLen(n)
	p.rt.Trigger(p.raw, lengthKey, TriggerSet, n)
	return true
}

// Has reports whether i is within range, tracking it.
func (p *ArrayProxy) Has(i int) bool {
	p.track(p.raw, i)
	return i >= 0 && i < p.raw.Len()
}

// Delete clears index i to nil without shifting, leaving a hole.
func (p *ArrayProxy) Delete(i int) bool {
	if p.m.readonly() {
		p.rejectWrite("delete", i)
		return true
	}
	p.deleteIndex(i)
	return true
}

func (p *ArrayProxy) deleteIndex(i int) {
	if i < 0 || i >= p.raw.Len() {
		return
	}
	p.raw.items[i] = nil
	p.rt.Trigger(p.raw, i, TriggerDelete, nil)
}

// Keys returns the indices, tracking the length.
func (p *ArrayProxy) Keys() []int {
	n := p.Len()
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Values returns the elements, tracking the length and every index.
func (p *ArrayProxy) Values() []any {
	n := p.Len()
	out := make([]any, n)
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

// ForEach calls fn for every element, tracking like Values.
func (p *ArrayProxy) ForEach(fn func(i int, value any)) {
	n := p.Len()
	for i := 0; i < n; i++ {
		fn(i, p.At(i))
	}
}

// Includes reports whether v is an element. NaN matches NaN. The search
// runs first over the proxied elements, so a proxy finds its own wrapped
// element, then over the raw elements, so a raw container is found too.
func (p *ArrayProxy) Includes(v any) bool {
	return p.search(v, equal.Same, false) >= 0
}

// IndexOf returns the first index holding v, or -1. NaN never matches.
func (p *ArrayProxy) IndexOf(v any) int {
	return p.search(v, equal.Strict, false)
}

// LastIndexOf returns the last index holding v, or -1.
func (p *ArrayProxy) LastIndexOf(v any) int {
	return p.search(v, equal.Strict, true)
}

func (p *ArrayProxy) search(v any, eq func(a, b any) bool, backwards bool) int {
	n := p.Len()
	find := func(at func(int) any) int {
		if backwards {
			for i := n - 1; i >= 0; i-- {
				if eq(at(i), v) {
					return i
				}
			}
			return -1
		}
		for i := 0; i < n; i++ {
			if eq(at(i), v) {
				return i
			}
		}
		return -1
	}

	if i := find(p.At); i >= 0 {
		return i
	}
	return find(p.raw.At)
}

// Push appends values and returns the new length.
func (p *ArrayProxy) Push(values ...any) int {
	if p.m.readonly() {
		p.rejectWrite("push", lengthKey)
		return p.raw.Len()
	}
	p.rt.PauseTracking()
	defer p.rt.ResumeTracking()

	for _, v := range values {
		p.Set(p.raw.Len(), v)
	}
	return p.raw.Len()
}

// Pop removes and returns the last element, or nil when empty.
func (p *ArrayProxy) Pop() any {
	if p.m.readonly() {
		p.rejectWrite("pop", lengthKey)
		return nil
	}
	p.rt.PauseTracking()
	defer p.rt.ResumeTracking()

	n := p.raw.Len()
	if n == 0 {
		return nil
	}
	last := p.wrapNested(p.raw.At(n - 1))
	p.deleteIndex(n - 1)
	p.SetLen(n - 1)
	return last
}

// Shift removes and returns the first element, or nil when empty.
func (p *ArrayProxy) Shift() any {
	if p.m.readonly() {
		p.rejectWrite("shift", lengthKey)
		return nil
	}
	p.rt.PauseTracking()
	defer p.rt.ResumeTracking()

	n := p.raw.Len()
	if n == 0 {
		return nil
	}
	first := p.wrapNested(p.raw.At(0))
	for k := 1; k < n; k++ {
		p.Set(k-1, p.raw.At(k))
	}
	p.deleteIndex(n - 1)
	p.SetLen(n - 1)
	return first
}

// Unshift prepends values and returns the new length.
func (p *ArrayProxy) Unshift(values ...any) int {
	if p.m.readonly() {
		p.rejectWrite("unshift", lengthKey)
		return p.raw.Len()
	}
	p.rt.PauseTracking()
	defer p.rt.ResumeTracking()

	n := p.raw.Len()
	count := len(values)
	if count == 0 {
		return n
	}
	for k := n; k > 0; k-- {
		p.Set(k+count-1, p.raw.At(k-1))
	}
	for j, v := range values {
		p.Set(j, v)
	}
	return p.raw.Len()
}

// Splice removes deleteCount elements at start, inserts items in their
// place and returns the removed elements. A negative start counts from the
// end.
func (p *ArrayProxy) Splice(start, deleteCount int, items ...any) []any {
	if p.m.readonly() {
		p.rejectWrite("splice", start)
		return nil
	}
	p.rt.PauseTracking()
	defer p.rt.ResumeTracking()

	n := p.raw.Len()
	if start < 0 {
		start = max(n+start, 0)
	}
	start = min(start, n)
	deleteCount = min(max(deleteCount, 0), n-start)

	removed := make([]any, deleteCount)
	for k := range removed {
		removed[k] = p.wrapNested(p.raw.At(start + k))
	}

	itemCount := len(items)
	switch {
	case itemCount < deleteCount:
		for k := start; k < n-deleteCount; k++ {
			p.Set(k+itemCount, p.raw.At(k+deleteCount))
		}
		for k := n - 1; k >= n-deleteCount+itemCount; k-- {
			p.deleteIndex(k)
		}
	case itemCount > deleteCount:
		for k := n - deleteCount; k > start; k-- {
			p.Set(k+itemCount-1, p.raw.At(k+deleteCount-1))
		}
	}
	for j, v := range items {
		p.Set(start+j, v)
	}
	p.SetLen(n - deleteCount + itemCount)
	return removed
}
