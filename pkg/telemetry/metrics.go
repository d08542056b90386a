// Package telemetry provides the Prometheus metrics and OpenTelemetry spans
// shared by the reactive runtime, the renderer and the live server.
//
// Every method on *Metrics and *Tracer is safe to call on a nil receiver,
// so instrumented code never has to check whether telemetry is enabled.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the metrics collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rendr").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rendr",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors for one process. Create it once per
// registry; registering twice on the same registry panics.
type Metrics struct {
	effectRuns         prometheus.Counter
	triggers           *prometheus.CounterVec
	jobsFlushed        prometheus.Counter
	flushes            prometheus.Counter
	hostOps            *prometheus.CounterVec
	readonlyViolations prometheus.Counter
	renderDuration     prometheus.Histogram
	activeSessions     prometheus.Gauge
	framesSent         prometheus.Counter
}

// NewMetrics registers the collectors and returns them.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		effectRuns: counter("effect_runs_total", "Total number of effect executions"),

		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of change notifications by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		jobsFlushed: counter("jobs_flushed_total", "Total number of queued jobs executed"),
		flushes:     counter("flushes_total", "Total number of job queue flushes"),

		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_ops_total",
			Help:        "Total number of host operations issued by the renderer",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		readonlyViolations: counter("readonly_violations_total", "Total number of writes rejected by read-only proxies"),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Duration of top-level Render calls in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active live sessions",
			ConstLabels: config.ConstLabels,
		}),

		framesSent: counter("frames_sent_total", "Total number of mutation frames sent to live clients"),
	}
}

// EffectRun records one effect execution.
func (m *Metrics) EffectRun() {
	if m == nil {
		return
	}
	m.effectRuns.Inc()
}

// Trigger records one change notification of the given kind.
func (m *Metrics) Trigger(kind string) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(kind).Inc()
}

// Flush records one job queue flush that ran n jobs.
func (m *Metrics) Flush(n int) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.jobsFlushed.Add(float64(n))
}

// HostOp records one host operation.
func (m *Metrics) HostOp(op string) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op).Inc()
}

// ReadonlyViolation records one rejected write.
func (m *Metrics) ReadonlyViolation() {
	if m == nil {
		return
	}
	m.readonlyViolations.Inc()
}

// ObserveRender records the duration of one Render call.
func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// FrameSent records one frame written to a live client.
func (m *Metrics) FrameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}
