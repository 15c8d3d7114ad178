// Package config holds client configuration for the Yarnly storefront.
// Configuration lives at ~/.yarnly/config.yaml and can be overridden by
// environment variables (YARNLY_API_URL, YARNLY_TIMEOUT, YARNLY_DEBUG),
// which in turn may be supplied through a .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all Yarnly client configuration.
type Config struct {
	// Base URL of the Yarnly HTTP API.
	APIURL string `yaml:"api_url"`

	// Overall timeout for a single request, as a duration string.
	Timeout string `yaml:"timeout"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// StateDir is where the session token and logs live.
	StateDir string `yaml:"state_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		APIURL:   "http://localhost:8000",
		Timeout:  "15s",
		Debug:    false,
		StateDir: defaultStateDir(),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".yarnly"
	}
	return filepath.Join(home, ".yarnly")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultStateDir(), "config.yaml")
}

// Load reads the config file at path, then applies environment overrides.
// A missing file is not an error: defaults are used.
func Load(path string) (Config, error) {
	// Pick up a local .env first so its variables participate in overrides.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides lets environment variables win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("YARNLY_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("YARNLY_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("YARNLY_DEBUG"); v == "1" || v == "true" {
		c.Debug = true
	}
	if v := os.Getenv("YARNLY_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not a valid URL", c.APIURL)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout %q is not a valid duration: %w", c.Timeout, err)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir is required")
	}
	return nil
}

// RequestTimeout parses the configured timeout, falling back to 15s.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
