package core

import (
	"fmt"
	"strings"
	"time"
)

// Config is the declarative client configuration. The connection URI is the
// only mandatory value; everything else has a working default.
type Config struct {
	ConnectionURI  string `koanf:"connection_uri" mapstructure:"connection_uri"`
	Insecure       bool   `koanf:"insecure" mapstructure:"insecure"`
	TimeoutSeconds int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
	Timezone       string `koanf:"timezone" mapstructure:"timezone"`
}

func DefaultConfig() Config {
	return Config{
		TimeoutSeconds: 30,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ConnectionURI) == "" {
		return fmt.Errorf("core: connection_uri is required")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("core: timeout_seconds must not be negative")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("core: timezone is not a valid location: %w", err)
		}
	}
	return nil
}

// Timeout returns the configured per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Location resolves the configured timezone, falling back to the process
// location.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
