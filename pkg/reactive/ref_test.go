package reactive

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	rt := New()
	r := NewRef(rt, 1)

	var seen int
	runs := 0
	rt.Effect(func() any {
		runs++
		seen = r.Value()
		return nil
	})

	r.Set(1)
	assert.Equal(t, 1, runs)
	r.Set(2)
	assert.Equal(t, 2, seen)
	r.Update(func(v int) int { return v * 10 })
	assert.Equal(t, 20, seen)
	assert.Equal(t, 20, r.Peek())
	assert.Equal(t, 3, runs)
}

func TestToRef_KeepsReactivity(t *testing.T) {
	rt := New()
	state := rt.ReactiveObject(ObjectOf("foo", 1, "bar", 2))
	foo := ToRef(state, "foo")

	var seen any
	rt.Effect(func() any {
		seen = foo.Value()
		return nil
	})

	state.Set("foo", 10)
	assert.Equal(t, 10, seen)

	foo.Set(20)
	assert.Equal(t, 20, state.Get("foo"))
	assert.Equal(t, "foo", foo.Key())
}

func TestToRefs_ProxyRefs(t *testing.T) {
	rt := New()
	state := rt.ReactiveObject(ObjectOf("foo", 1, "bar", 2))
	refs := ToRefs(state)
	assert.Len(t, refs, 2)

	view := ProxyRefs(refs)
	assert.Equal(t, []string{"bar", "foo"}, view.Keys())
	assert.Equal(t, 1, view.Get("foo"))

	view.Set("foo", 5)
	assert.Equal(t, 5, state.Get("foo"), "write goes into the ref")

	view.Set("extra", "plain")
	assert.Equal(t, "plain", view.Get("extra"))
}

func TestProxyRefs_WrongTypeIgnored(t *testing.T) {
	var buf bytes.Buffer
	rt := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	count := NewRef(rt, 1)
	view := ProxyRefs(map[string]any{"count": count})

	assert.NotPanics(t, func() { view.Set("count", "three") })
	assert.Equal(t, 1, count.Peek())
	assert.Contains(t, buf.String(), "write to typed ref ignored")
	assert.Contains(t, buf.String(), "got=string")

	view.Set("count", 3)
	assert.Equal(t, 3, count.Peek())
}

func TestUnref(t *testing.T) {
	rt := New()
	assert.Equal(t, 3, Unref(NewRef(rt, 3)))
	assert.Equal(t, "x", Unref("x"))
	assert.True(t, IsRef(Computed(rt, func() int { return 1 })))
	assert.False(t, IsRef(4))
}
