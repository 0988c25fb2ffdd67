package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Key != "cvgen" {
		t.Fatalf("Storage.Key = %q, want cvgen", cfg.Storage.Key)
	}
	if cfg.Export.Format != "html" {
		t.Fatalf("Export.Format = %q, want html", cfg.Export.Format)
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cvgen.yaml")
	payload := `
storage:
  dir: /tmp/profiles
theme:
  name: classic
  variant: dark
export:
  format: pdf
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Dir != "/tmp/profiles" {
		t.Fatalf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if cfg.Storage.Key != "cvgen" {
		t.Fatalf("Storage.Key should keep default, got %q", cfg.Storage.Key)
	}
	if cfg.Theme.Name != "classic" || cfg.Theme.Variant != "dark" {
		t.Fatalf("theme = %+v", cfg.Theme)
	}
	if cfg.Export.Format != "pdf" {
		t.Fatalf("Export.Format = %q, want pdf", cfg.Export.Format)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cvgen.yaml")
	if err := os.WriteFile(path, []byte("export:\n  format: docx\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for unknown format, got nil")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cvgen.yaml")
	if err := os.WriteFile(path, []byte("storage: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for malformed YAML, got nil")
	}
}
