package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vitrine-dev/vitrine/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func allEnvKeys() []string {
	return []string{EnvBaseURL, EnvHost, EnvPort, EnvMode, EnvLogLevel, EnvLogFormat}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Server.ShutdownTimeout.Std() != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout.Std())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.Path() != "" || cfg.Server.Port != DefaultPort {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	writeFile(t, dir, ConfigFileName, `{
  "baseURL": "/loja/",
  "server": {"port": 9000, "readTimeout": "5s"},
  "log": {"level": "debug"}
}`)

	cfg, err = Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "/loja/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("unset host should keep default, got %q", cfg.Server.Host)
	}
	if cfg.Server.ReadTimeout.Std() != 5*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout.Std())
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.Base() != "/loja" {
		t.Errorf("Base() = %q", cfg.Base())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"server": {"readTimeout": 5}}`)

	_, err := Load(dir)
	if errors.Code(err) != "V010" {
		t.Errorf("Load error = %v, want V010", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBaseURL:   "/loja",
		EnvHost:      "0.0.0.0",
		EnvPort:      "3000",
		EnvMode:      EnvProduction,
		EnvLogLevel:  "warn",
		EnvLogFormat: "json",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := New()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "/loja" || cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 3000 {
		t.Errorf("server settings not applied: %+v", cfg)
	}
	if !cfg.IsProduction() || cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("mode settings not applied: %+v", cfg)
	}

	env[EnvPort] = "oito mil"
	if err := New().ApplyEnv(lookup); errors.Code(err) != "V011" {
		t.Errorf("bad port error = %v, want V011", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := New()
	cfg.ApplyOverrides(Overrides{Port: 9999, BaseURL: "/x/"})

	if cfg.Server.Port != 9999 || cfg.BaseURL != "/x/" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("zero override should leave host, got %q", cfg.Server.Host)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"defaults", func(*Config) {}, ""},
		{"base without slash", func(c *Config) { c.BaseURL = "loja" }, "V002"},
		{"base with backslash", func(c *Config) { c.BaseURL = `/lo\ja` }, "V002"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "V011"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "V011"},
		{"unknown env", func(c *Config) { c.Env = "staging" }, "V011"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "V011"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "V011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if got := errors.Code(err); got != tt.wantCode {
				t.Errorf("Validate() = %v, want code %q", err, tt.wantCode)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	unsetEnv(t, allEnvKeys()...)
	dir := t.TempDir()

	writeFile(t, dir, ConfigFileName, `{"baseURL": "/arquivo/", "server": {"port": 7000}}`)
	writeFile(t, dir, ".env", "BASE_URL=/dotenv/\nVITRINE_PORT=7100\nVITRINE_ENV=production\n")
	writeFile(t, dir, ".env.local", "VITRINE_PORT=7200\n")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Resolve(dir, Overrides{Host: "127.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "/dotenv/" {
		t.Errorf("BaseURL = %q, want /dotenv/ from .env", cfg.BaseURL)
	}
	if cfg.Server.Port != 7200 {
		t.Errorf("Port = %d, want 7200 from .env.local", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want flag value", cfg.Server.Host)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug from env", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("production should default to json logs, got %q", cfg.Log.Format)
	}
	if cfg.Address() != "127.0.0.1:7200" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestResolveRealEnvBeatsDotenv(t *testing.T) {
	unsetEnv(t, allEnvKeys()...)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "BASE_URL=/dotenv/\n")
	t.Setenv(EnvBaseURL, "/real/")

	cfg, err := Resolve(dir, Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "/real/" {
		t.Errorf("BaseURL = %q, want /real/", cfg.BaseURL)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("development should default to console logs, got %q", cfg.Log.Format)
	}
}

func TestResolveInvalid(t *testing.T) {
	unsetEnv(t, allEnvKeys()...)
	dir := t.TempDir()
	t.Setenv(EnvBaseURL, "loja")

	if _, err := Resolve(dir, Overrides{}); errors.Code(err) != "V002" {
		t.Errorf("Resolve error = %v, want V002", err)
	}
}
