package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pokemon-mcp/internal/buildinfo"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultTimeout = 30 * time.Second
)

// Config holds the server configuration. Every field has a usable default, so
// running without a config file is the normal case.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Transport string        `yaml:"transport"`
	Addr      string        `yaml:"addr"`
	Path      string        `yaml:"path"`
	LogLevel  string        `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default(version string) *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: buildinfo.UserAgent(version),
		Transport: "stdio",
		Addr:      ":8080",
		Path:      "/mcp",
		LogLevel:  "info",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string, version string) (*Config, error) {
	cfg := Default(version)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.Transport) {
	case "stdio":
	case "http":
		if c.Addr == "" {
			return fmt.Errorf("addr is required for http transport")
		}
		if !strings.HasPrefix(c.Path, "/") {
			return fmt.Errorf("path must start with /: %q", c.Path)
		}
	default:
		return fmt.Errorf("unknown transport: %q (want stdio|http)", c.Transport)
	}
	return nil
}

// String renders the config as YAML.
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(b)
}
