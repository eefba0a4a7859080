package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitrine-dev/vitrine/internal/errors"
	"github.com/vitrine-dev/vitrine/internal/logging"
	"github.com/vitrine-dev/vitrine/pkg/routepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vitrine.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultBaseURL mounts the application at the root.
	DefaultBaseURL = "/"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Environment variable names.
const (
	EnvBaseURL   = "BASE_URL"
	EnvHost      = "VITRINE_HOST"
	EnvPort      = "VITRINE_PORT"
	EnvMode      = "VITRINE_ENV"
	EnvLogLevel  = "VITRINE_LOG_LEVEL"
	EnvLogFormat = "VITRINE_LOG_FORMAT"
)

// dotenvFiles are loaded in order; earlier files win.
var dotenvFiles = []string{".env.local", ".env"}

// Config represents the complete vitrine.json configuration.
type Config struct {
	// Name is the application name shown in logs.
	Name string `json:"name,omitempty"`

	// BaseURL is the deployment base path every route is mounted under.
	BaseURL string `json:"baseURL,omitempty"`

	// Env is "development" or "production".
	Env string `json:"env,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server"`

	// Log contains logger settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string   `json:"host,omitempty"`
	Port            int      `json:"port,omitempty"`
	ReadTimeout     Duration `json:"readTimeout,omitempty"`
	WriteTimeout    Duration `json:"writeTimeout,omitempty"`
	IdleTimeout     Duration `json:"idleTimeout,omitempty"`
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is console or json. Empty picks json in production and
	// console otherwise.
	Format string `json:"format,omitempty"`
}

// Duration is a time.Duration written as a string ("15s") in JSON.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"15s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Overrides holds command-line settings. Zero values leave the loaded
// configuration untouched.
type Overrides struct {
	BaseURL   string
	Host      string
	Port      int
	Env       string
	LogLevel  string
	LogFormat string
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name:    "vitrine",
		BaseURL: DefaultBaseURL,
		Env:     EnvDevelopment,
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads vitrine.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if stderrors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, errors.New("V010").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("V010").
			Wrap(err).
			WithSuggestion("check that " + filepath.Base(path) + " is valid JSON")
	}
	cfg.configPath = path
	return cfg, nil
}

// LoadDotenv loads .env.local and .env from dir into the process
// environment. Variables already set are left alone; missing files are
// skipped.
func LoadDotenv(dir string) error {
	for _, name := range dotenvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.New("V010").
				WithDetail(name + " could not be parsed.").
				Wrap(err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("V011").
				WithDetail(fmt.Sprintf("%s=%q is not a number.", EnvPort, v))
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		c.Env = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// ApplyOverrides applies command-line settings.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Host != "" {
		c.Server.Host = o.Host
	}
	if o.Port != 0 {
		c.Server.Port = o.Port
	}
	if o.Env != "" {
		c.Env = o.Env
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
}

// applyDefaults fills settings that depend on other settings.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Log.Format == "" {
		if c.IsProduction() {
			c.Log.Format = logging.FormatJSON
		} else {
			c.Log.Format = logging.FormatConsole
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "/") {
		return errors.New("V002").
			Wrap(fmt.Errorf("base path %q must start with \"/\"", c.BaseURL))
	}
	if _, err := routepath.NormalizeBase(c.BaseURL); err != nil {
		return errors.New("V002").Wrap(fmt.Errorf("base path %q: %w", c.BaseURL, err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("V011").
			WithDetail(fmt.Sprintf("server.port must be between 1 and 65535, got %d.", c.Server.Port))
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return errors.New("V011").
			WithDetail(fmt.Sprintf("env must be %q or %q, got %q.", EnvDevelopment, EnvProduction, c.Env))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.New("V011").Wrap(err)
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return errors.New("V011").
			WithDetail(fmt.Sprintf("log.format must be %q or %q, got %q.", logging.FormatConsole, logging.FormatJSON, c.Log.Format))
	}
	return nil
}

// Resolve builds the effective configuration for the application in dir:
// file, dotenv files, environment, then flags.
func Resolve(dir string, o Overrides) (*Config, error) {
	if err := LoadDotenv(dir); err != nil {
		return nil, err
	}
	cfg, err := Load(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(o)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Base returns the normalized base path ("" for root, "/loja" otherwise).
// It assumes Validate succeeded.
func (c *Config) Base() string {
	base, _ := routepath.NormalizeBase(c.BaseURL)
	return base
}
