package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the developer's environment and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvVerbose, EnvTimeout, EnvProgressInterval} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, c.APIURL)
	assert.False(t, c.Verbose)
	assert.Equal(t, Duration(0), c.Timeout)
	assert.Equal(t, Duration(100*time.Millisecond), c.ProgressInterval)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
  "api_url": "http://localhost:8083/api/",
  "verbose": true,
  "timeout": "30s",
  "progress_interval": "250ms"
}`), 0o600))

	c, err := LoadFrom(p)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8083/api", c.APIURL)
	assert.True(t, c.Verbose)
	assert.Equal(t, Duration(30*time.Second), c.Timeout)
	assert.Equal(t, Duration(250*time.Millisecond), c.ProgressInterval)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"api_url": "http://file.example/api"}`), 0o600))
	t.Setenv(EnvAPIURL, "https://env.example/api")
	t.Setenv(EnvVerbose, "1")
	t.Setenv(EnvTimeout, "5s")

	c, err := LoadFrom(p)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example/api", c.APIURL)
	assert.True(t, c.Verbose)
	assert.Equal(t, Duration(5*time.Second), c.Timeout)
}

func TestDotEnvIsLoaded(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvAPIURL)
	require.NoError(t, os.WriteFile(".env", []byte(EnvAPIURL+"=http://dotenv.example/api\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(EnvAPIURL) })

	c, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.example/api", c.APIURL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "relative url", file: `{"api_url": "/api"}`},
		{name: "unsupported scheme", file: `{"api_url": "ftp://example.org/api"}`},
		{name: "bad duration in file", file: `{"timeout": "soon"}`},
		{name: "numeric duration in file", file: `{"timeout": 30}`},
		{name: "negative timeout", file: `{"timeout": "-1s"}`},
		{name: "bad verbose env", file: `{}`, env: map[string]string{EnvVerbose: "maybe"}},
		{name: "bad timeout env", file: `{}`, env: map[string]string{EnvTimeout: "later"}},
		{name: "malformed json", file: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			p := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(p, []byte(tt.file), 0o600))

			_, err := LoadFrom(p)
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesXDGDir(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "trigger"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(base, "trigger", "config.json"),
		[]byte(`{"api_url": "http://xdg.example/api"}`), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://xdg.example/api", c.APIURL)
}
