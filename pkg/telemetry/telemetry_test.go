package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.EffectRun()
	m.EffectRun()
	m.Trigger("add")
	m.Flush(3)
	m.HostOp("insert")
	m.HostOp("insert")
	m.ReadonlyViolation()
	m.ObserveRender(5 * time.Millisecond)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.FrameSent()

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"effect runs", m.effectRuns, 2},
		{"add triggers", m.triggers.WithLabelValues("add"), 1},
		{"flushes", m.flushes, 1},
		{"jobs", m.jobsFlushed, 3},
		{"inserts", m.hostOps.WithLabelValues("insert"), 2},
		{"readonly", m.readonlyViolations, 1},
		{"sessions", m.activeSessions, 1},
		{"frames", m.framesSent, 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}

	if n := testutil.CollectAndCount(m.renderDuration); n != 1 {
		t.Errorf("render histogram series = %d, want 1", n)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.EffectRun()
	m.Trigger("set")
	m.Flush(1)
	m.HostOp("remove")
	m.ReadonlyViolation()
	m.ObserveRender(time.Second)
	m.SessionOpened()
	m.SessionClosed()
	m.FrameSent()
}

func TestTracer_NilSafe(t *testing.T) {
	var tr *Tracer
	ctx := context.Background()
	got, span := tr.Start(ctx, "noop")
	if got != ctx {
		t.Error("nil tracer should return the incoming context")
	}
	if span.IsRecording() {
		t.Error("nil tracer span should not record")
	}
	span.End()
}

func TestTracer_Provider(t *testing.T) {
	tr := NewTracerFrom(noop.NewTracerProvider(), "")
	_, span := tr.Start(context.Background(), "render")
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()
}
