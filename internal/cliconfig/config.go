// Package cliconfig loads and validates tsload's CLI configuration.
//
// Precedence is flags > environment (TSLOAD_*) > TOML config file >
// built-in defaults, tracked through the set of explicitly changed flags.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tsload/tsload/internal/domain"
)

// Config holds CLI configuration for tsload.
type Config struct {
	Host    string
	File    string
	Backend string

	ChunkSize int
	Workers   int
	MaxRPS    int

	OmitTimestamp bool

	HTTPTimeout time.Duration

	JSONOut string

	// BackendKind is the parsed Backend, set by Validate.
	BackendKind domain.Backend
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Workers:     1,
		HTTPTimeout: 15 * time.Second,
	}
}

// Validate checks the configuration for errors and resolves derived values.
// All configuration errors surface here, before any file or network I/O.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.File == "" {
		return fmt.Errorf("file is required")
	}
	if c.Backend == "" {
		return fmt.Errorf("backend is required")
	}

	kind, err := domain.ParseBackend(c.Backend)
	if err != nil {
		return err
	}
	c.BackendKind = kind

	// Ensure no trailing slash
	c.Host = strings.TrimRight(c.Host, "/")

	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrChunkSize, c.ChunkSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", domain.ErrWorkerCount, c.Workers)
	}
	if c.MaxRPS < 0 {
		return fmt.Errorf("max-rps must not be negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
