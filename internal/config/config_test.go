package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.RetentionCap != 10000 {
		t.Fatalf("retention cap default %d", cfg.RetentionCap)
	}
	if cfg.ArchiveEvicted {
		t.Fatalf("archive should default off")
	}
}

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path should yield defaults")
	}
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "syncline.json")
	if err := os.WriteFile(path, []byte(`{"retentionCap": 250, "archiveEvicted": true}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RetentionCap != 250 || !cfg.ArchiveEvicted {
		t.Fatalf("overlay failed: %+v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("untouched defaults should survive: %+v", cfg.Log)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SYNCLINE_RETENTION_CAP", "123")
	t.Setenv("SYNCLINE_ARCHIVE_EVICTED", "true")
	t.Setenv("SYNCLINE_LOG_LEVEL", "debug")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.RetentionCap != 123 || !cfg.ArchiveEvicted || cfg.Log.Level != "debug" {
		t.Fatalf("env overlay failed: %+v", cfg)
	}

	t.Setenv("SYNCLINE_RETENTION_CAP", "not-a-number")
	cfg2 := Default()
	FromEnv(&cfg2)
	if cfg2.RetentionCap != 10000 {
		t.Fatalf("invalid env value should be ignored: %+v", cfg2)
	}
}
