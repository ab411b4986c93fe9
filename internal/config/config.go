// Package config loads the gateway and CLI settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/fleurish.yaml"

	EnvPath        = "FLEURISH_CONFIG"
	EnvAPIBaseURL  = "FLEURISH_API_BASE_URL"
	EnvAPITimeout  = "FLEURISH_API_TIMEOUT_SECONDS"
	EnvListenAddr  = "FLEURISH_LISTEN_ADDR"
	EnvDatabaseDSN = "FLEURISH_DB_DSN"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	API      APIConfig      `yaml:"api"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig points at the Fleurish REST backend. BaseURL keeps its trailing
// slash; endpoint paths are appended to it.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type ServerConfig struct {
	ListenAddress string `yaml:"listen_address"`
	// DirectoryFanOut bounds concurrent lookups when listing gardens.
	DirectoryFanOut int `yaml:"directory_fan_out"`
}

// DatabaseConfig enables the postgres token store when DSN is set.
type DatabaseConfig struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3000/api/",
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			ListenAddress:   ":8080",
			DirectoryFanOut: 8,
		},
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the config file location, FLEURISH_CONFIG first.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults. Environment overrides are applied after the file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. Malformed numbers are
// ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookupTrimmed(lookup, EnvAPIBaseURL); ok {
		c.API.BaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvAPITimeout); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = n
		}
	}
	if v, ok := lookupTrimmed(lookup, EnvListenAddr); ok {
		c.Server.ListenAddress = v
	}
	if v, ok := lookupTrimmed(lookup, EnvDatabaseDSN); ok {
		c.Database.DSN = v
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute url", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: api.timeout_seconds must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Server.ListenAddress) == "" {
		return fmt.Errorf("%w: server.listen_address is required", ErrInvalidConfig)
	}
	if c.Server.DirectoryFanOut < 0 {
		return fmt.Errorf("%w: server.directory_fan_out must not be negative", ErrInvalidConfig)
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
