package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("cvgen"); ok {
		t.Fatalf("expected missing key before first write")
	}
	if !m.Set("cvgen", `{"user":{}}`) {
		t.Fatalf("expected memory write to succeed")
	}
	raw, ok := m.Get("cvgen")
	if !ok || raw != `{"user":{}}` {
		t.Fatalf("unexpected read back: %q, %v", raw, ok)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)

	if !f.Set("cvgen", "payload") {
		t.Fatalf("expected file write to succeed")
	}
	raw, ok := f.Get("cvgen")
	if !ok || raw != "payload" {
		t.Fatalf("unexpected read back: %q, %v", raw, ok)
	}
}

func TestFile_SetReportsFailureInsteadOfPanicking(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "occupied")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	f := NewFile(blocked)
	if f.Set("cvgen", "payload") {
		t.Fatalf("expected write into a non-directory to report false")
	}

	if NewFile("").Set("cvgen", "payload") {
		t.Fatalf("expected write with empty dir to report false")
	}
}

func TestFile_KeySanitisation(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)

	if !f.Set("a/b:c", "v") {
		t.Fatalf("expected sanitised write to succeed")
	}
	if _, err := os.Stat(filepath.Join(dir, "a_b_c.json")); err != nil {
		t.Fatalf("expected sanitised file name: %v", err)
	}
}
