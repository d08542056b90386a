// Package reactive implements fine-grained reactive state: dependency
// tracking, effects, reactive proxies over records, sequences, sets and
// maps, computed values, watchers, refs and a batching job queue.
//
// All reactive state lives in a Runtime. A Runtime is single-threaded:
// Track, Trigger, proxies and effects must be used from one goroutine.
// Other goroutines hand work to it with Post, which the owner drains with
// Tick, Run or WaitPosted.
//
//	rt := reactive.New()
//	state := rt.ReactiveObject(reactive.ObjectOf("count", 0))
//	rt.Effect(func() any {
//	    fmt.Println(state.Get("count"))
//	    return nil
//	})
//	state.Set("count", 1) // prints 1
package reactive

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/petermattis/goid"

	"github.com/vango-dev/rendr/pkg/telemetry"
)

// Runtime owns the dependency store, the active-effect stack, the proxy
// identity caches and the job queue.
type Runtime struct {
	deps *depStore

	// effectStack holds the running effects; the top is the active one.
	effectStack []*Effect

	// pauseDepth > 0 suppresses tracking.
	pauseDepth int

	// proxies caches one proxy per (raw container, mode).
	proxies [modeCount]map[any]Proxy

	nextEffectID uint64

	queue      jobQueue
	microtasks []func()

	// inbox receives work from other goroutines.
	inboxMu sync.Mutex
	inbox   []func()
	wake    chan struct{}

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer

	ownerCheck bool
	owner      int64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for warnings such as writes to
// read-only proxies.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithTracer enables spans around job queue flushes.
func WithTracer(t *telemetry.Tracer) Option {
	return func(rt *Runtime) {
		rt.tracer = t
	}
}

// WithOwnerCheck binds the runtime to the goroutine calling New and logs an
// error whenever tracking, triggering or queueing happens on any other
// goroutine.
func WithOwnerCheck() Option {
	return func(rt *Runtime) {
		rt.ownerCheck = true
	}
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		deps:   newDepStore(),
		wake:   make(chan struct{}, 1),
		logger: slog.Default().With("component", "reactive"),
	}
	for i := range rt.proxies {
		rt.proxies[i] = make(map[any]Proxy)
	}
	rt.queue.index = make(map[*Effect]struct{})
	for _, opt := range opts {
		opt(rt)
	}
	if rt.ownerCheck {
		rt.owner = goid.Get()
	}
	return rt
}

// checkOwner logs when the runtime is touched off its owner goroutine.
func (rt *Runtime) checkOwner(op string) {
	if !rt.ownerCheck {
		return
	}
	if gid := goid.Get(); gid != rt.owner {
		rt.logger.Error("reactive runtime used off its owner goroutine",
			"op", op,
			"owner", rt.owner,
			"goroutine", gid)
	}
}

// =============================================================================
// Tracking
// =============================================================================

// activeEffect returns the running effect, or nil.
func (rt *Runtime) activeEffect() *Effect {
	if n := len(rt.effectStack); n > 0 {
		return rt.effectStack[n-1]
	}
	return nil
}

// Track records that the active effect depends on (target, key). It does
// nothing when no effect is running or tracking is paused.
func (rt *Runtime) Track(target, key any) {
	rt.checkOwner("track")
	e := rt.activeEffect()
	if e == nil || e.stopped || rt.pauseDepth > 0 {
		return
	}
	if d := rt.deps.subscribe(target, key, e); d != nil {
		e.deps = append(e.deps, d)
	}
}

// Trigger notifies the subscribers of (target, key) of a change of the
// given kind. newValue is only consulted for sequence length writes, where
// it holds the new length.
//
// Beyond the key's own subscribers:
//   - Add and Delete also notify enumeration subscribers.
//   - Set on a Map also notifies enumeration subscribers, since values are
//     part of Map enumeration.
//   - Add and Delete on a Map also notify key-enumeration subscribers.
//   - Add on a sequence also notifies length subscribers.
//   - A length write on a sequence notifies every index at or beyond the
//     new length.
//   - Clear notifies every subscriber of the target.
//
// The running effect is never notified of its own writes. Each effect is
// notified at most once per call.
func (rt *Runtime) Trigger(target, key any, kind TriggerKind, newValue any) {
	rt.checkOwner("trigger")
	keys := rt.deps.keys(target)
	if keys == nil {
		return
	}
	rt.metrics.Trigger(kind.String())

	active := rt.activeEffect()
	var toRun effectSet
	collect := func(d *dep) {
		for _, e := range d.ordered() {
			if e != active {
				toRun.add(e)
			}
		}
	}

	_, isSeq := target.(*Array)
	_, isMap := target.(*Map)

	if kind == TriggerClear {
		for _, k := range sortedKeys(keys) {
			collect(keys[k])
		}
	} else {
		collect(keys[key])

		if kind == TriggerAdd || kind == TriggerDelete || (kind == TriggerSet && isMap) {
			collect(keys[iterateKey])
		}
		if isMap && (kind == TriggerAdd || kind == TriggerDelete) {
			collect(keys[mapKeyIterateKey])
		}
		if isSeq && kind == TriggerAdd {
			collect(keys[lengthKey])
		}
		if isSeq && key == lengthKey {
			newLen, _ := newValue.(int)
			var indices []int
			for k := range keys {
				if i, ok := k.(int); ok && i >= newLen {
					indices = append(indices, i)
				}
			}
			sort.Ints(indices)
			for _, i := range indices {
				collect(keys[i])
			}
		}
	}

	for _, e := range toRun.list {
		if e.stopped {
			continue
		}
		e.schedule()
	}
}

// sortedKeys orders a target's keys: strings, then ints, then other keys,
// then sentinels.
func sortedKeys(keys map[any]*dep) []any {
	out := make([]any, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	rank := func(k any) int {
		switch k.(type) {
		case string:
			return 0
		case int:
			return 1
		case *sentinel:
			return 3
		default:
			return 2
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		switch a := out[i].(type) {
		case string:
			return a < out[j].(string)
		case int:
			return a < out[j].(int)
		case *sentinel:
			return a.name < out[j].(*sentinel).name
		}
		return false
	})
	return out
}

// PauseTracking suspends dependency recording until the matching
// ResumeTracking. Calls nest.
func (rt *Runtime) PauseTracking() {
	rt.pauseDepth++
}

// ResumeTracking undoes one PauseTracking.
func (rt *Runtime) ResumeTracking() {
	if rt.pauseDepth > 0 {
		rt.pauseDepth--
	}
}

// Untracked runs fn without recording dependencies, restoring the previous
// tracking state even if fn panics.
func (rt *Runtime) Untracked(fn func()) {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	fn()
}

// Tracking reports whether a read right now would be recorded.
func (rt *Runtime) Tracking() bool {
	e := rt.activeEffect()
	return e != nil && !e.stopped && rt.pauseDepth == 0
}

// SubscriberCount returns the number of effects subscribed to (target,
// key). target is a raw container, ref or computed value; proxies are
// unwrapped.
func (rt *Runtime) SubscriberCount(target, key any) int {
	return rt.deps.count(ToRaw(target), key)
}

// =============================================================================
// Microtasks and cross-goroutine work
// =============================================================================

// QueueMicrotask schedules fn to run on the next Tick, after the current
// synchronous work.
func (rt *Runtime) QueueMicrotask(fn func()) {
	rt.microtasks = append(rt.microtasks, fn)
}

// drainMicrotasks runs queued microtasks until none remain, including
// those queued while draining.
func (rt *Runtime) drainMicrotasks() {
	for len(rt.microtasks) > 0 {
		fn := rt.microtasks[0]
		rt.microtasks[0] = nil
		rt.microtasks = rt.microtasks[1:]
		fn()
	}
}

// Post hands fn to the runtime from any goroutine. It runs on the owner
// goroutine during a later Tick.
func (rt *Runtime) Post(fn func()) {
	rt.inboxMu.Lock()
	rt.inbox = append(rt.inbox, fn)
	rt.inboxMu.Unlock()

	select {
	case rt.wake <- struct{}{}:
	default:
	}
}

// Wake returns a channel that receives after Post. Event loops select on it
// and then call Tick.
func (rt *Runtime) Wake() <-chan struct{} {
	return rt.wake
}

// Tick runs posted tasks in order, draining microtasks after each one,
// then drains any remaining microtasks.
func (rt *Runtime) Tick() {
	rt.tick()
}

func (rt *Runtime) tick() int {
	rt.inboxMu.Lock()
	tasks := rt.inbox
	rt.inbox = nil
	rt.inboxMu.Unlock()

	for _, task := range tasks {
		task()
		rt.drainMicrotasks()
	}
	rt.drainMicrotasks()
	return len(tasks)
}

// Run processes posted work until ctx is done.
func (rt *Runtime) Run(ctx context.Context) error {
	for {
		rt.tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rt.wake:
		}
	}
}

// WaitPosted blocks until at least one posted task has run, or ctx is done.
func (rt *Runtime) WaitPosted(ctx context.Context) error {
	for {
		if rt.tick() > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rt.wake:
		}
	}
}
