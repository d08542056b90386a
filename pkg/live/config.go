package live

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/rendr/pkg/telemetry"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address for Run.
	Addr string

	// AllowedOrigins lists the Origin headers accepted on /ws. Empty or
	// "*" accepts any origin.
	AllowedOrigins []string

	// MetricsPath is where Prometheus metrics are served. Empty disables
	// the route.
	MetricsPath string

	// Gatherer backs the metrics route. Defaults to the default registry.
	Gatherer prometheus.Gatherer

	// Metrics records session and runtime metrics. Nil disables them.
	Metrics *telemetry.Metrics

	// Tracer traces renders and flushes. Nil disables tracing.
	Tracer *telemetry.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// OwnerCheck enables the runtime's owner goroutine check per session.
	OwnerCheck bool

	// ReadLimit is the maximum client message size in bytes.
	ReadLimit int64

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            "localhost:7070",
		MetricsPath:     "/metrics",
		ReadLimit:       64 * 1024,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
