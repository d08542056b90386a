package reactive

// WatchCallback receives the new and previous source values. onInvalidate
// registers a cleanup that runs before the next callback, which lets a
// callback discard the result of work it started when a newer change
// arrives.
type WatchCallback func(newValue, oldValue any, onInvalidate func(cleanup func()))

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	immediate bool
	flushPost bool
}

// Immediate invokes the callback once at creation, with a nil old value.
func Immediate() WatchOption {
	return func(o *watchOptions) {
		o.immediate = true
	}
}

// FlushPost defers the callback to a microtask. Several changes in the same
// synchronous burst produce one callback that observes the final state.
func FlushPost() WatchOption {
	return func(o *watchOptions) {
		o.flushPost = true
	}
}

// Watch observes source and calls cb when it changes. It returns a function
// that stops watching.
//
// The source may be:
//   - a func() any getter, whose reads are tracked and whose result is
//     passed to cb;
//   - a ref or computed value, whose value is passed to cb and traversed;
//   - a container or proxy, which is traversed deeply (every nested key,
//     element and entry is read) and passed to cb as is.
//
// For container sources the new and old values are the same proxy.
func (rt *Runtime) Watch(source any, cb WatchCallback, opts ...WatchOption) (stop func()) {
	var o watchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var getter func() any
	switch s := source.(type) {
	case func() any:
		getter = s
	case refLike:
		getter = func() any {
			v := s.anyValue()
			rt.traverse(v, make(map[any]struct{}))
			return v
		}
	default:
		if !isContainer(source) {
			rt.logger.Warn("watch source is not a function, ref or container", "source", source)
		}
		target := rt.Reactive(source)
		getter = func() any {
			return rt.traverse(target, make(map[any]struct{}))
		}
	}

	var (
		cleanup  func()
		oldValue any
		queued   bool
		effect   *Effect
	)
	onInvalidate := func(fn func()) {
		cleanup = fn
	}
	job := func() {
		queued = false
		if effect.Stopped() {
			return
		}
		newValue := effect.Run()
		if cleanup != nil {
			fn := cleanup
			cleanup = nil
			fn()
		}
		cb(newValue, oldValue, onInvalidate)
		oldValue = newValue
	}

	effect = rt.Effect(getter, Lazy(), WithScheduler(func(*Effect) {
		if !o.flushPost {
			job()
			return
		}
		if !queued {
			queued = true
			rt.QueueMicrotask(job)
		}
	}))

	if o.immediate {
		job()
	} else {
		oldValue = effect.Run()
	}

	return effect.Stop
}

// traverse reads every reachable key of v so the active effect depends on
// all of them. Cycles are cut by the seen set.
func (rt *Runtime) traverse(v any, seen map[any]struct{}) any {
	if r, ok := v.(refLike); ok {
		rt.traverse(r.anyValue(), seen)
		return v
	}
	p, ok := v.(Proxy)
	if !ok {
		return v
	}
	raw := p.Raw()
	if _, ok := seen[raw]; ok {
		return v
	}
	seen[raw] = struct{}{}

	switch t := p.(type) {
	case *ObjectProxy:
		for _, k := range t.Keys() {
			rt.traverse(t.Get(k), seen)
		}
	case *ArrayProxy:
		for _, item := range t.Values() {
			rt.traverse(item, seen)
		}
	case *SetProxy:
		for _, item := range t.Values() {
			rt.traverse(item, seen)
		}
	case *MapProxy:
		for _, e := range t.Entries() {
			rt.traverse(e.Key, seen)
			rt.traverse(e.Value, seen)
		}
	}
	return v
}
