package config

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/live"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rendr.yaml"

	// DefaultAddr is the default live server address.
	DefaultAddr = "localhost:7070"

	// DefaultMetricsPath is where the live server exposes metrics.
	DefaultMetricsPath = "/metrics"

	// EnvAddr overrides Serve.Addr when set.
	EnvAddr = "RENDR_ADDR"
)

// Config represents rendr.yaml.
type Config struct {
	// Name is the project name.
	Name string `yaml:"name,omitempty"`

	// Serve configures the live server.
	Serve ServeConfig `yaml:"serve,omitempty"`

	// Snapshot configures where `rendr render` writes by default.
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log,omitempty"`

	// Runtime configures each reactive runtime.
	Runtime RuntimeConfig `yaml:"runtime,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains live server settings.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr,omitempty"`

	// AllowedOrigins lists accepted WebSocket origins.
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`

	// MetricsPath is the Prometheus route. "-" disables it.
	MetricsPath string `yaml:"metricsPath,omitempty"`

	// ReadLimit is the maximum client message size in bytes.
	ReadLimit int64 `yaml:"readLimit,omitempty"`

	// WriteTimeout bounds each frame write (e.g. "10s").
	WriteTimeout time.Duration `yaml:"writeTimeout,omitempty"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
}

// SnapshotConfig contains render output settings.
type SnapshotConfig struct {
	// Out is a file path or s3://bucket/key URL.
	Out string `yaml:"out,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// RuntimeConfig contains reactive runtime settings.
type RuntimeConfig struct {
	// OwnerCheck logs when a runtime is used off its owner goroutine.
	OwnerCheck bool `yaml:"ownerCheck,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads rendr.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path, applies
// defaults and the environment override, and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithLocation(path, yamlErrorLine(err), 0)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads rendr.yaml from dir, falling back to defaults when
// the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.HasCode(err, "E141") {
		cfg = New()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := live.DefaultConfig()

	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.MetricsPath == "" {
		c.Serve.MetricsPath = DefaultMetricsPath
	}
	if c.Serve.ReadLimit == 0 {
		c.Serve.ReadLimit = d.ReadLimit
	}
	if c.Serve.WriteTimeout == 0 {
		c.Serve.WriteTimeout = d.WriteTimeout
	}
	if c.Serve.ShutdownTimeout == 0 {
		c.Serve.ShutdownTimeout = d.ShutdownTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Serve.Addr = addr
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E121").
			WithDetailf("%q is not a log level", c.Log.Level).
			WithSuggestion("Use one of: debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E123").
			WithDetailf("%q is not a log format", c.Log.Format).
			WithSuggestion("Use text or json")
	}
	if _, port, err := net.SplitHostPort(c.Serve.Addr); err != nil || port == "" {
		return errors.New("E122").
			WithDetailf("%q is not host:port", c.Serve.Addr)
	}
	if c.Serve.MetricsPath != "-" && !strings.HasPrefix(c.Serve.MetricsPath, "/") {
		return errors.New("E122").
			WithDetailf("metrics path %q must start with /", c.Serve.MetricsPath)
	}
	if c.Serve.ReadLimit < 0 || c.Serve.WriteTimeout < 0 || c.Serve.ShutdownTimeout < 0 {
		return errors.New("E120").WithDetail("serve limits must not be negative")
	}
	return nil
}

// LiveConfig converts the serve section into a live.Config.
func (c *Config) LiveConfig(logger *slog.Logger) live.Config {
	lc := live.DefaultConfig()
	lc.Addr = c.Serve.Addr
	lc.AllowedOrigins = c.Serve.AllowedOrigins
	lc.MetricsPath = c.Serve.MetricsPath
	if lc.MetricsPath == "-" {
		lc.MetricsPath = ""
	}
	lc.ReadLimit = c.Serve.ReadLimit
	lc.WriteTimeout = c.Serve.WriteTimeout
	lc.ShutdownTimeout = c.Serve.ShutdownTimeout
	lc.OwnerCheck = c.Runtime.OwnerCheck
	lc.Logger = logger
	return lc
}

// Logger builds a logger for the log section writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse level: %w", err)
	}
	return level, nil
}

// yamlErrorLine extracts the line number from a yaml.v3 error message.
func yamlErrorLine(err error) int {
	var line int
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		fmt.Sscanf(msg[i:], "line %d", &line)
	}
	return line
}
