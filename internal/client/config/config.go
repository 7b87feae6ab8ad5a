package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/exports"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds runtime settings for the roster CLI.
type Config struct {
	Backend             string
	DatabasePath        string
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	CallTimeout         time.Duration
	LogLevel            string
	// Timezone names the zone used to print creation dates ("Local" for the
	// system zone).
	Timezone  string
	ExportDir string
	S3        exports.Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendLocal
	c.DatabasePath = "roster.db"
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.CallTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Timezone = "Local"
	c.ExportDir = "."
	c.S3 = exports.Config{Region: "us-east-1"}
}

// Validate checks values that cannot be fixed later.
func (c *Config) Validate() error {
	if c.Backend != BackendLocal && c.Backend != BackendRemote {
		return fmt.Errorf("backend must be %q or %q, got %q", BackendLocal, BackendRemote, c.Backend)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
