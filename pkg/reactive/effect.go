package reactive

// Effect is a re-runnable computation whose reads are recorded as
// dependencies. When any dependency changes the effect is re-run, or
// handed to its scheduler when one is configured.
//
// Before each run the effect unsubscribes from everything it read last
// time, so conditional branches that are no longer taken stop notifying it.
type Effect struct {
	rt *Runtime
	id uint64

	// fn is the effect body. Its return value is returned by Run.
	fn func() any

	// deps are the dep sets this effect is currently a member of.
	deps []*dep

	// scheduler, when set, is invoked on change instead of Run.
	scheduler func(*Effect)

	// onStop is called once by Stop.
	onStop func()

	// lazy suppresses the initial run.
	lazy bool

	// stopped effects never subscribe again.
	stopped bool
}

// EffectOption configures an Effect.
type EffectOption interface {
	applyEffect(*Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) applyEffect(e *Effect) {
	f(e)
}

// Lazy prevents the effect from running on creation. The caller runs it
// explicitly with Run.
func Lazy() EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.lazy = true
	})
}

// WithScheduler replaces the default re-run on change. The scheduler
// receives the effect and decides when to call Run.
func WithScheduler(fn func(*Effect)) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.scheduler = fn
	})
}

// OnStop registers a callback invoked when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.onStop = fn
	})
}

// Effect creates an effect around fn. Unless Lazy is given, fn runs once
// immediately.
func (rt *Runtime) Effect(fn func() any, opts ...EffectOption) *Effect {
	rt.nextEffectID++
	e := &Effect{
		rt: rt,
		id: rt.nextEffectID,
		fn: fn,
	}
	for _, opt := range opts {
		opt.applyEffect(e)
	}
	if !e.lazy {
		e.Run()
	}
	return e
}

// ID returns the unique identifier of the effect within its runtime.
func (e *Effect) ID() uint64 {
	return e.id
}

// Run executes the effect body with the effect active, re-collecting its
// dependencies, and returns the body's result. A stopped effect still runs
// its body but records nothing.
func (e *Effect) Run() any {
	if e.stopped {
		var v any
		e.rt.Untracked(func() { v = e.fn() })
		return v
	}

	rt := e.rt
	e.cleanup()
	rt.effectStack = append(rt.effectStack, e)
	defer func() {
		rt.effectStack = rt.effectStack[:len(rt.effectStack)-1]
	}()

	rt.metrics.EffectRun()
	return e.fn()
}

// Stop detaches the effect from every dependency. It will never be
// notified again.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.cleanup()
	e.stopped = true
	if e.onStop != nil {
		e.onStop()
	}
}

// Stopped reports whether Stop was called.
func (e *Effect) Stopped() bool {
	return e.stopped
}

// cleanup removes the effect from every dep set it belongs to.
func (e *Effect) cleanup() {
	for _, d := range e.deps {
		d.remove(e)
	}
	e.deps = e.deps[:0]
}

// schedule notifies the effect of a change.
func (e *Effect) schedule() {
	if e.scheduler != nil {
		e.scheduler(e)
		return
	}
	e.Run()
}
