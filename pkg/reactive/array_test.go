package reactive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayProxy_LengthTruncation(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray("a", "b", "c"))

	var first, third, length int
	rt.Effect(func() any {
		first++
		_ = arr.At(0)
		return nil
	})
	rt.Effect(func() any {
		third++
		_ = arr.At(2)
		return nil
	})
	rt.Effect(func() any {
		length++
		_ = arr.Len()
		return nil
	})

	arr.SetLen(1)
	assert.Equal(t, 1, first, "index below the new length is untouched")
	assert.Equal(t, 2, third)
	assert.Equal(t, 2, length)
	assert.Equal(t, 1, arr.Raw().(*Array).Len())
}

func TestArrayProxy_SetPastEndIsAdd(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray("a"))

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = arr.Len()
		return nil
	})

	arr.Set(0, "b")
	assert.Equal(t, 1, runs)

	arr.Set(3, "d")
	assert.Equal(t, 2, runs)
	assert.Equal(t, []any{"b", nil, nil, "d"}, arr.Raw().(*Array).Slice())
}

func TestArrayProxy_ValuesTrackElements(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray(1, 2))

	var got []any
	rt.Effect(func() any {
		got = arr.Values()
		return nil
	})
	arr.Set(1, 20)
	assert.Equal(t, []any{1, 20}, got)
	arr.Push(3)
	assert.Equal(t, []any{1, 20, 3}, got)
}

func TestArrayProxy_PushInTwoEffects(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray())

	rt.Effect(func() any {
		arr.Push(1)
		return nil
	})
	rt.Effect(func() any {
		arr.Push(2)
		return nil
	})
	assert.Equal(t, []any{1, 2}, arr.Raw().(*Array).Slice())
	assert.Equal(t, 0, rt.SubscriberCount(arr, lengthKey))
}

func TestArrayProxy_Includes(t *testing.T) {
	rt := New()
	obj := NewObject()
	arr := rt.ReactiveArray(NewArray(obj, math.NaN()))

	assert.True(t, arr.Includes(arr.At(0)), "wrapped element matches wrapped query")
	assert.True(t, arr.Includes(obj), "raw element matches raw query")
	assert.Equal(t, 0, arr.IndexOf(obj))
	assert.Equal(t, 0, arr.LastIndexOf(arr.At(0)))

	assert.True(t, arr.Includes(math.NaN()))
	assert.Equal(t, -1, arr.IndexOf(math.NaN()))
	assert.False(t, arr.Includes(NewObject()))
}

func TestArrayProxy_Mutators(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray(1, 2, 3, 4))
	raw := arr.Raw().(*Array)

	removed := arr.Splice(1, 2, "x")
	assert.Equal(t, []any{2, 3}, removed)
	assert.Equal(t, []any{1, "x", 4}, raw.Slice())

	removed = arr.Splice(-1, 0, "y", "z")
	assert.Empty(t, removed)
	assert.Equal(t, []any{1, "x", "y", "z", 4}, raw.Slice())

	assert.Equal(t, 6, arr.Unshift(0))
	assert.Equal(t, []any{0, 1, "x", "y", "z", 4}, raw.Slice())

	assert.Equal(t, 0, arr.Shift())
	assert.Equal(t, 4, arr.Pop())
	assert.Equal(t, []any{1, "x", "y", "z"}, raw.Slice())

	empty := rt.ReactiveArray(NewArray())
	assert.Nil(t, empty.Pop())
	assert.Nil(t, empty.Shift())
}

func TestArrayProxy_PopNotifiesLength(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray("a", "b"))

	var n int
	rt.Effect(func() any {
		n = arr.Len()
		return nil
	})
	arr.Pop()
	assert.Equal(t, 1, n)
}

func TestArrayProxy_DeleteLeavesHole(t *testing.T) {
	rt := New()
	arr := rt.ReactiveArray(NewArray("a", "b"))

	var seen any = "unset"
	rt.Effect(func() any {
		seen = arr.At(0)
		return nil
	})
	arr.Delete(0)
	assert.Nil(t, seen)
	assert.Equal(t, 2, arr.Raw().(*Array).Len())
}

func TestArrayProxy_Readonly(t *testing.T) {
	rt := New()
	ro := rt.Readonly(NewArray(1)).(*ArrayProxy)
	ro.Push(2)
	ro.Set(0, 5)
	ro.SetLen(0)
	assert.Equal(t, []any{1}, ro.Raw().(*Array).Slice())
}
