package keystore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/live-labs/sealbox/internal/crypto"
)

func TestEnsureCreatesKey(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	key, err := s.Ensure("myapp")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if len(key) != crypto.KeySize {
		t.Errorf("Key size: got %d, want %d", len(key), crypto.KeySize)
	}
	if !s.Exists("myapp") {
		t.Error("Key file should exist after Ensure")
	}

	// Key file holds 64 hex characters
	data, err := os.ReadFile(s.Path("myapp"))
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}
	if len(data) != crypto.KeySize*2 {
		t.Errorf("Key file length: got %d, want %d", len(data), crypto.KeySize*2)
	}
}

func TestEnsureIdempotent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	key1, err := s.Ensure("myapp")
	if err != nil {
		t.Fatalf("First Ensure failed: %v", err)
	}
	key2, err := s.Ensure("myapp")
	if err != nil {
		t.Fatalf("Second Ensure failed: %v", err)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Repeated Ensure must return the same key")
	}
}

func TestEnsureIsolatedPerLabel(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	key1, _ := s.Ensure("app1")
	key2, _ := s.Ensure("app2")
	if bytes.Equal(key1, key2) {
		t.Error("Different labels must get different keys")
	}
}

func TestKeyFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	s := New(filepath.Join(t.TempDir(), "keys"))

	if _, err := s.Ensure("myapp"); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	info, err := os.Stat(s.Path("myapp"))
	if err != nil {
		t.Fatalf("Stat key file failed: %v", err)
	}
	if info.Mode().Perm() != 0400 {
		t.Errorf("Key file permissions: got %o, want 0400", info.Mode().Perm())
	}

	info, err = os.Stat(filepath.Dir(s.Path("myapp")))
	if err != nil {
		t.Fatalf("Stat key dir failed: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("Key dir permissions: got %o, want 0700", info.Mode().Perm())
	}
}

func TestLoadMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")
	s := New(dir)

	if err := os.MkdirAll(filepath.Join(dir, "bad"), 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	cases := map[string]string{
		"not-hex":   "zzzz",
		"too-short": "deadbeef",
	}
	for name, content := range cases {
		if err := os.WriteFile(s.Path("bad"), []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if _, err := s.Load("bad"); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: expected ErrCorrupt, got %v", name, err)
		}
		if err := os.Remove(s.Path("bad")); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
	}
}

func TestPutRefusesOverwrite(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	original, err := s.Ensure("myapp")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	replacement, _ := crypto.GenerateKey()
	if err := s.Put("myapp", replacement, false); !errors.Is(err, ErrExists) {
		t.Errorf("Expected ErrExists, got %v", err)
	}

	// The original key is untouched
	loaded, err := s.Load("myapp")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(loaded, original) {
		t.Error("Failed Put must not modify the existing key")
	}
}

func TestPutForce(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	if _, err := s.Ensure("myapp"); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	replacement, _ := crypto.GenerateKey()
	if err := s.Put("myapp", replacement, true); err != nil {
		t.Fatalf("Forced Put failed: %v", err)
	}

	loaded, err := s.Load("myapp")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(loaded, replacement) {
		t.Error("Forced Put must replace the key")
	}
}

func TestPutRejectsBadKeySize(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "keys"))

	if err := s.Put("myapp", []byte("short"), false); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt, got %v", err)
	}
}
