package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvID             = "LOCATOR_ID"
	EnvLogLevel       = "LOCATOR_LOG_LEVEL"
	EnvLogFormat      = "LOCATOR_LOG_FORMAT"
	EnvMetricsEnabled = "LOCATOR_METRICS_ENABLED"
	EnvOneTimeRelease = "LOCATOR_ONE_TIME_RELEASE"
)

// FromEnv overrides base with the LOCATOR_* variables. Values are taken from
// the process environment first and then from envFiles (dotenv format).
// Missing env files are ignored; the process environment is never modified.
func FromEnv(base Config, envFiles ...string) (Config, error) {
	fileEnv := make(map[string]string)
	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", file, err)
		}
		maps.Copy(fileEnv, values)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok && v != ""
	}

	c := base
	if v, ok := lookup(EnvID); ok {
		c.ID = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvMetricsEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMetricsEnabled, err)
		}
		c.Metrics.Enabled = enabled
	}
	if v, ok := lookup(EnvOneTimeRelease); ok {
		if err := c.OneTime.Release.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOneTimeRelease, err)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
