package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host          string `toml:"host"`
	File          string `toml:"file"`
	Backend       string `toml:"backend"`
	ChunkSize     int    `toml:"chunk_size"`
	Workers       int    `toml:"workers"`
	MaxRPS        int    `toml:"max_rps"`
	OmitTimestamp *bool  `toml:"omit_timestamp"`
	HTTPTimeout   string `toml:"http_timeout"`
	JSONOut       string `toml:"json_out"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.tsload/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tsload", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("file", fc.File, &cfg.File)
	s.setString("backend", fc.Backend, &cfg.Backend)
	s.setString("json-out", fc.JSONOut, &cfg.JSONOut)

	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setInt("max-rps", fc.MaxRPS, &cfg.MaxRPS)

	s.setBool("omit-timestamp", fc.OmitTimestamp, &cfg.OmitTimestamp)

	return s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
