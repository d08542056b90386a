package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetProxy_NotifiesOnlyOnMembershipChange(t *testing.T) {
	rt := New()
	s := rt.ReactiveSet(NewSet(1))

	runs := 0
	var size int
	rt.Effect(func() any {
		runs++
		size = s.Size()
		return nil
	})

	s.Add(1)
	assert.Equal(t, 1, runs, "adding an existing member is not a change")

	s.Add(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, size)

	assert.False(t, s.Delete(3))
	assert.Equal(t, 2, runs)

	assert.True(t, s.Delete(1))
	assert.Equal(t, 3, runs)
	assert.Equal(t, 1, size)
}

func TestSetProxy_HasTracksMember(t *testing.T) {
	rt := New()
	s := rt.ReactiveSet(NewSet())

	var has bool
	runs := 0
	rt.Effect(func() any {
		runs++
		has = s.Has("a")
		return nil
	})
	s.Add("b")
	assert.Equal(t, 1, runs, "other members do not notify Has")
	s.Add("a")
	assert.True(t, has)
}

func TestSetProxy_ProxyMembersStoredRaw(t *testing.T) {
	rt := New()
	obj := rt.ReactiveObject(NewObject())
	s := rt.ReactiveSet(NewSet())

	s.Add(obj)
	assert.True(t, s.Raw().(*Set).Has(obj.Raw()))
	assert.True(t, s.Has(obj))
	assert.Same(t, obj, s.Values()[0], "enumeration wraps members")
}

func TestSetProxy_Clear(t *testing.T) {
	rt := New()
	s := rt.ReactiveSet(NewSet(1, 2))

	var has bool
	rt.Effect(func() any {
		has = s.Has(1)
		return nil
	})
	s.Clear()
	assert.False(t, has)
}

func TestMapProxy_KeysIgnoreValueChanges(t *testing.T) {
	rt := New()
	m := rt.ReactiveMap(MapOf("a", 1))

	keyRuns, valueRuns := 0, 0
	rt.Effect(func() any {
		keyRuns++
		_ = m.Keys()
		return nil
	})
	rt.Effect(func() any {
		valueRuns++
		_ = m.Values()
		return nil
	})

	m.Set("a", 2)
	assert.Equal(t, 1, keyRuns)
	assert.Equal(t, 2, valueRuns)

	m.Set("a", 2)
	assert.Equal(t, 2, valueRuns, "same value is not a change")

	m.Set("b", 3)
	assert.Equal(t, 2, keyRuns)
	assert.Equal(t, 3, valueRuns)

	m.Delete("a")
	assert.Equal(t, 3, keyRuns)
	assert.Equal(t, 4, valueRuns)
}

func TestMapProxy_GetTracksKey(t *testing.T) {
	rt := New()
	m := rt.ReactiveMap(NewMap())

	var got any
	runs := 0
	rt.Effect(func() any {
		runs++
		got = m.Get("k")
		return nil
	})
	m.Set("other", 1)
	assert.Equal(t, 1, runs)
	m.Set("k", "v")
	assert.Equal(t, "v", got)
	assert.False(t, m.Delete("missing"))
}

func TestMapProxy_EntriesAndForEach(t *testing.T) {
	rt := New()
	m := rt.ReactiveMap(MapOf("a", 1, "b", 2))

	assert.Equal(t, []Entry{{"a", 1}, {"b", 2}}, m.Entries())

	var keys []any
	m.ForEach(func(_, k any) { keys = append(keys, k) })
	assert.Equal(t, []any{"a", "b"}, keys)
	assert.Equal(t, 2, m.Size())
}

func TestMapProxy_Readonly(t *testing.T) {
	rt := New()
	ro := rt.Readonly(MapOf("a", 1)).(*MapProxy)
	ro.Set("a", 2)
	ro.Delete("a")
	ro.Clear()
	assert.Equal(t, 1, ro.Get("a"))
}

func TestMapProxy_NestedValuesWrapped(t *testing.T) {
	rt := New()
	inner := ObjectOf("x", 1)
	m := rt.ReactiveMap(MapOf("obj", inner))

	p, ok := m.Get("obj").(*ObjectProxy)
	assert.True(t, ok)
	assert.Same(t, inner, p.Raw())
}
