package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
host = "http://127.0.0.1:9000"
file = "/data/sensors.lp"
backend = "questdb"
chunk_size = 5000
workers = 4
omit_timestamp = true
http_timeout = "30s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if fc.Host != "http://127.0.0.1:9000" {
		t.Errorf("Host = %q", fc.Host)
	}
	if fc.ChunkSize != 5000 || fc.Workers != 4 {
		t.Errorf("ChunkSize/Workers = %d/%d", fc.ChunkSize, fc.Workers)
	}
	if fc.OmitTimestamp == nil || !*fc.OmitTimestamp {
		t.Error("OmitTimestamp not parsed")
	}
}

func TestLoadFileConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("host = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	omit := true
	fc := FileConfig{
		Host:          "http://file-host:9000",
		Backend:       "influxdb",
		ChunkSize:     2000,
		Workers:       8,
		OmitTimestamp: &omit,
		HTTPTimeout:   "20s",
	}

	t.Run("applies when flags unchanged", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
			t.Fatalf("ApplyFileConfig: %v", err)
		}
		if cfg.Host != "http://file-host:9000" || cfg.ChunkSize != 2000 || cfg.Workers != 8 {
			t.Errorf("file values not applied: %+v", cfg)
		}
		if !cfg.OmitTimestamp {
			t.Error("OmitTimestamp not applied")
		}
		if cfg.HTTPTimeout != 20*time.Second {
			t.Errorf("HTTPTimeout = %v, want 20s", cfg.HTTPTimeout)
		}
	})

	t.Run("explicit flags win", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Host = "http://flag-host:9000"
		cfg.Workers = 2
		changed := map[string]bool{"host": true, "workers": true}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			t.Fatalf("ApplyFileConfig: %v", err)
		}
		if cfg.Host != "http://flag-host:9000" {
			t.Errorf("Host = %q, flag value overridden", cfg.Host)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, flag value overridden", cfg.Workers)
		}
		if cfg.ChunkSize != 2000 {
			t.Errorf("ChunkSize = %d, file value not applied", cfg.ChunkSize)
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		cfg := DefaultConfig()
		bad := FileConfig{HTTPTimeout: "soon"}
		if err := ApplyFileConfig(&cfg, bad, map[string]bool{}); err == nil {
			t.Fatal("expected duration parse error")
		}
	})
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if FileExists(path) {
		t.Error("missing file reported as existing")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(path) {
		t.Error("existing file reported as missing")
	}
}
