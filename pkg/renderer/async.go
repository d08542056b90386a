package renderer

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// ErrAsyncTimeout is wrapped by the error an async component reports when
// its loader does not finish within AsyncOptions.Timeout.
var ErrAsyncTimeout = stderrors.New("renderer: async component timed out")

// AsyncOptions configures DefineAsync.
type AsyncOptions struct {
	// Name of the wrapper component. Defaults to "AsyncComponentWrapper".
	Name string

	// Loader fetches the real component. It runs on its own goroutine and
	// ctx is cancelled when the wrapper unmounts or the load times out.
	Loader func(ctx context.Context) (*vdom.Component, error)

	// Timeout bounds the load. Zero means no timeout.
	Timeout time.Duration

	// Delay postpones showing Loading, so fast loads do not flash it.
	Delay time.Duration

	// Loading is rendered while the load is in flight.
	Loading *vdom.Component

	// Error is rendered after a failure, with the error as prop "error".
	Error *vdom.Component

	// OnError decides what to do with a loader failure: call retry to load
	// again or fail to give up. attempts counts failures so far. Both
	// callbacks may be called from any goroutine.
	OnError func(err error, retry, fail func(), attempts int)
}

// DefineAsync returns a wrapper component that renders the component
// produced by opts.Loader once it is available. Until then it renders
// opts.Loading (after opts.Delay) or an empty text placeholder. Results
// are delivered through the runtime's Post inbox, so the embedder must
// keep ticking the runtime.
func DefineAsync(opts AsyncOptions) *vdom.Component {
	name := opts.Name
	if name == "" {
		name = "AsyncComponentWrapper"
	}

	return &vdom.Component{
		Name: name,
		Setup: func(ctx vdom.SetupContext) func() *vdom.VNode {
			inst := ctx.(*Instance)
			l := &asyncLoad{
				opts:    opts,
				name:    name,
				inst:    inst,
				rt:      inst.Runtime(),
				loaded:  reactive.NewRef(inst.Runtime(), false),
				loading: reactive.NewRef(inst.Runtime(), false),
				failure: reactive.NewRef[error](inst.Runtime(), nil),
			}
			l.start()
			ctx.OnUnmounted(l.abort)
			return l.render
		},
	}
}

// asyncLoad is the per-instance state of an async wrapper. Apart from the
// loader goroutine and timer callbacks, which only Post, everything runs
// on the runtime's goroutine.
type asyncLoad struct {
	opts AsyncOptions
	name string
	inst *Instance
	rt   *reactive.Runtime

	loaded  *reactive.Ref[bool]
	loading *reactive.Ref[bool]
	failure *reactive.Ref[error]
	inner   *vdom.Component

	cancel   context.CancelFunc
	timers   []*time.Timer
	gen      int
	attempts int
	settled  bool
	aborted  bool
}

func (l *asyncLoad) start() {
	if l.opts.Timeout > 0 {
		l.after(l.opts.Timeout, func() {
			err := errors.New("E002").
				WithDetailf("%s did not load within %s", l.name, l.opts.Timeout).
				Wrap(ErrAsyncTimeout)
			l.gen++
			if l.cancel != nil {
				l.cancel()
			}
			l.fail(err)
		})
	}
	if l.opts.Delay > 0 {
		l.after(l.opts.Delay, func() { l.loading.Set(true) })
	} else {
		l.loading.Set(true)
	}
	l.load()
}

// after posts fn to the runtime once d has passed, unless the load has
// settled by then.
func (l *asyncLoad) after(d time.Duration, fn func()) {
	t := time.AfterFunc(d, func() {
		l.rt.Post(func() {
			if l.settled || l.aborted {
				return
			}
			fn()
		})
	})
	l.timers = append(l.timers, t)
}

func (l *asyncLoad) load() {
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	go func() {
		comp, err := l.call(ctx)
		l.rt.Post(func() {
			if gen != l.gen || l.settled || l.aborted {
				return
			}
			if err != nil {
				l.handle(err)
				return
			}
			l.succeed(comp)
		})
	}()
}

// call runs the loader, turning a panic or a nil component into an error.
func (l *asyncLoad) call(ctx context.Context) (comp *vdom.Component, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("loader panicked: %v", p)
		}
	}()
	comp, err = l.opts.Loader(ctx)
	if err == nil && comp == nil {
		err = fmt.Errorf("loader returned no component")
	}
	return comp, err
}

func (l *asyncLoad) handle(err error) {
	coded := errors.FromError(err, "E001").WithDetailf("%s failed to load", l.name)
	if l.opts.OnError == nil {
		l.fail(coded)
		return
	}
	l.attempts++
	retry := func() {
		l.rt.Post(func() {
			if !l.settled && !l.aborted {
				l.load()
			}
		})
	}
	fail := func() {
		l.rt.Post(func() {
			if !l.settled && !l.aborted {
				l.fail(coded)
			}
		})
	}
	l.opts.OnError(coded, retry, fail, l.attempts)
}

func (l *asyncLoad) succeed(comp *vdom.Component) {
	l.settle()
	l.inner = comp
	l.loaded.Set(true)
}

func (l *asyncLoad) fail(err error) {
	l.settle()
	l.failure.Set(err)
	if l.opts.Error == nil {
		l.inst.r.onError(err)
	}
}

func (l *asyncLoad) settle() {
	l.settled = true
	l.stopTimers()
	l.loading.Set(false)
}

func (l *asyncLoad) abort() {
	l.aborted = true
	if l.cancel != nil {
		l.cancel()
	}
	l.stopTimers()
}

func (l *asyncLoad) stopTimers() {
	for _, t := range l.timers {
		t.Stop()
	}
	l.timers = nil
}

func (l *asyncLoad) render() *vdom.VNode {
	if l.loaded.Value() {
		return vdom.Comp(l.inner, l.passthrough())
	}
	if err := l.failure.Value(); err != nil && l.opts.Error != nil {
		return vdom.Comp(l.opts.Error, vdom.Props{"error": err})
	}
	if l.loading.Value() && l.opts.Loading != nil {
		return vdom.Comp(l.opts.Loading)
	}
	return vdom.Text("")
}

// passthrough forwards everything the parent passed to the wrapper.
func (l *asyncLoad) passthrough() vdom.Props {
	out := make(vdom.Props)
	for k, v := range l.inst.Attrs() {
		out[k] = v
	}
	for _, k := range l.inst.Props().Keys() {
		out[k] = l.inst.Props().Get(k)
	}
	return out
}
