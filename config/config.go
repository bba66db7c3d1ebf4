package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/junioryono/locator"
	"github.com/junioryono/locator/observability"
)

// Config holds registry settings.
type Config struct {
	// ID is the registry ID. Empty means a random UUID.
	ID string `yaml:"id" json:"id" toml:"id"`

	Log     LogConfig     `yaml:"log" json:"log" toml:"log"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" toml:"metrics"`
	OneTime OneTimeConfig `yaml:"one_time" json:"one_time" toml:"one_time"`
}

// LogConfig configures the registry logger.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn or error.
	// Empty disables logging.
	Level string `yaml:"level" json:"level" toml:"level"`

	// Format is "text" or "json". Defaults to text.
	Format string `yaml:"format" json:"format" toml:"format"`
}

// MetricsConfig configures OpenTelemetry metrics.
type MetricsConfig struct {
	// Enabled records metrics on the global OTel meter provider.
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`
}

// OneTimeConfig configures OneTime registrations.
type OneTimeConfig struct {
	// Release is on_success (default) or on_attempt.
	Release locator.ReleasePolicy `yaml:"release" json:"release" toml:"release"`
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	var errs []error

	if c.Log.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported format %q", c.Log.Format))
	}

	switch c.OneTime.Release {
	case locator.ReleaseOnSuccess, locator.ReleaseOnAttempt:
	default:
		errs = append(errs, fmt.Errorf("one_time.release: %w", locator.ReleasePolicyError{Value: c.OneTime.Release}))
	}

	return errors.Join(errs...)
}

// Logger builds the configured logger writing to w. It returns nil when
// logging is disabled.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	if c.Log.Level == "" {
		return nil, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log.format: unsupported format %q", c.Log.Format)
	}
}

// Options converts the configuration into registry options. Logs go to
// stderr.
func (c Config) Options() ([]locator.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := c.Logger(os.Stderr)
	if err != nil {
		return nil, err
	}

	opts := []locator.Option{
		locator.WithReleasePolicy(c.OneTime.Release),
	}

	if c.ID != "" {
		opts = append(opts, locator.WithID(c.ID))
	}

	if logger != nil {
		opts = append(opts, locator.WithLogger(logger))
	}

	if c.Metrics.Enabled {
		opts = append(opts, locator.WithMetrics(observability.NewMetricsRecorder()))
	}

	return opts, nil
}

// NewRegistry creates a registry from the configuration. extra options are
// applied after the configured ones, so they take precedence.
func NewRegistry(c Config, extra ...locator.Option) (*locator.Registry, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	return locator.New(append(opts, extra...)...), nil
}
