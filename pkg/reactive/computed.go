package reactive

// ComputedRef is a lazily evaluated derived value. It recomputes on the
// first read after any of its dependencies change, and notifies its own
// readers when that happens.
type ComputedRef[T any] struct {
	rt     *Runtime
	effect *Effect
	value  T
	dirty  bool
}

// Computed creates a derived value from getter. The getter does not run
// until the first Value call.
func Computed[T any](rt *Runtime, getter func() T) *ComputedRef[T] {
	c := &ComputedRef[T]{rt: rt, dirty: true}
	c.effect = rt.Effect(func() any {
		return getter()
	}, Lazy(), WithScheduler(func(*Effect) {
		if c.dirty {
			return
		}
		c.dirty = true
		rt.Trigger(c, valueKey, TriggerSet, nil)
	}))
	return c
}

// Value returns the cached value, recomputing it first if stale. Every
// read is tracked, so an effect reading a computed value re-runs when it
// becomes stale.
func (c *ComputedRef[T]) Value() T {
	if c.dirty {
		v := c.effect.Run()
		if v == nil {
			var zero T
			c.value = zero
		} else {
			c.value = v.(T)
		}
		c.dirty = false
	}
	c.rt.Track(c, valueKey)
	return c.value
}

// Dirty reports whether the next Value call will recompute.
func (c *ComputedRef[T]) Dirty() bool {
	return c.dirty
}

// Stop detaches the computed value from its dependencies. The last value
// stays cached.
func (c *ComputedRef[T]) Stop() {
	c.effect.Stop()
}

func (c *ComputedRef[T]) anyValue() any {
	return c.Value()
}
