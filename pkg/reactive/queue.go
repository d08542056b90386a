package reactive

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// jobQueue holds effects waiting for the next flush. An effect appears at
// most once until the flush that runs it completes.
type jobQueue struct {
	pending  []*Effect
	index    map[*Effect]struct{}
	flushing bool
}

// QueueJob schedules e to run in the next flush. Queueing an effect that
// is already pending does nothing. The first job queued after a flush
// schedules a new flush as a microtask, so any number of synchronous
// changes produce a single run per effect.
//
// QueueJob has the scheduler signature and is normally passed directly:
//
//	rt.Effect(render, reactive.WithScheduler(rt.QueueJob))
func (rt *Runtime) QueueJob(e *Effect) {
	rt.checkOwner("queue")
	if _, ok := rt.queue.index[e]; ok {
		return
	}
	rt.queue.index[e] = struct{}{}
	rt.queue.pending = append(rt.queue.pending, e)

	if !rt.queue.flushing {
		rt.queue.flushing = true
		rt.QueueMicrotask(rt.flushJobs)
	}
}

// PendingJobs returns the number of queued jobs.
func (rt *Runtime) PendingJobs() int {
	return len(rt.queue.pending)
}

// flushJobs runs queued jobs in order. Jobs queued during the flush join
// it. The queue and the flushing flag are reset even if a job panics.
func (rt *Runtime) flushJobs() {
	_, span := rt.tracer.Start(context.Background(), "rendr.flush")
	ran := 0
	defer func() {
		rt.queue.pending = nil
		clear(rt.queue.index)
		rt.queue.flushing = false
		rt.metrics.Flush(ran)
		span.SetAttributes(attribute.Int("rendr.jobs", ran))
		span.End()
	}()

	for i := 0; i < len(rt.queue.pending); i++ {
		e := rt.queue.pending[i]
		if e.stopped {
			continue
		}
		ran++
		e.Run()
	}
}
