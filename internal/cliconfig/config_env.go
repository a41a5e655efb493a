package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TSLOAD_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("TSLOAD_HOST"), &cfg.Host)
	s.setString("file", os.Getenv("TSLOAD_FILE"), &cfg.File)
	s.setString("backend", os.Getenv("TSLOAD_BACKEND"), &cfg.Backend)
	s.setString("json-out", os.Getenv("TSLOAD_JSON_OUT"), &cfg.JSONOut)

	if err := s.setIntFromString("chunk-size", os.Getenv("TSLOAD_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("TSLOAD_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setIntFromString("max-rps", os.Getenv("TSLOAD_MAX_RPS"), &cfg.MaxRPS); err != nil {
		return err
	}

	s.setBoolFromString("omit-timestamp", os.Getenv("TSLOAD_OMIT_TIMESTAMP"), &cfg.OmitTimestamp)

	return s.setDuration("timeout", os.Getenv("TSLOAD_HTTP_TIMEOUT"), &cfg.HTTPTimeout)
}
