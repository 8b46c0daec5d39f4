// Package config loads CLI configuration from the XDG config dir and the environment.
// Only non-secret settings are kept here; credentials live in the credential store.
//
// Precedence, lowest first: built-in defaults, config.json in the config dir,
// a .env file in the working directory, then process environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"trigger/cli/internal/xdg"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the production TRIGGER service.
const DefaultAPIURL = "https://trigger-io.difa.unibo.it/api"

// Environment variables read by Load.
const (
	EnvAPIURL           = "TRIGGER_API_URL"
	EnvVerbose          = "TRIGGER_VERBOSE"
	EnvTimeout          = "TRIGGER_TIMEOUT"
	EnvProgressInterval = "TRIGGER_PROGRESS_INTERVAL"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL  string `json:"api_url"`
	Verbose bool   `json:"verbose"`
	// Timeout bounds each HTTP request; zero leaves the transport default.
	Timeout Duration `json:"timeout"`
	// ProgressInterval is the spinner frame interval.
	ProgressInterval Duration `json:"progress_interval"`
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:           DefaultAPIURL,
		ProgressInterval: Duration(100 * time.Millisecond),
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing config file or .env yields defaults.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(p string) (Config, error) {
	c := Defaults()

	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return c, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	if err := validate(&c); err != nil {
		return c, err
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVerbose)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = Duration(d)
	}
	if v := strings.TrimSpace(os.Getenv(EnvProgressInterval)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProgressInterval, err)
		}
		c.ProgressInterval = Duration(d)
	}
	return nil
}

func validate(c *Config) error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("validation error: api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("validation error: timeout must not be negative, got %s", time.Duration(c.Timeout))
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = Defaults().ProgressInterval
	}
	return nil
}
