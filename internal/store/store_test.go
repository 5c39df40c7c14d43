package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestEnsureCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sealbox")

	l, err := Ensure(root)
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	for _, dir := range []string{root, l.KeysDir(), l.SecretsDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("Directory %s should exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != DirPermSecure {
			t.Errorf("%s permissions: got %o, want %o", dir, info.Mode().Perm(), DirPermSecure)
		}
	}
}

func TestEnsureIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sealbox")

	if _, err := Ensure(root); err != nil {
		t.Fatalf("First Ensure failed: %v", err)
	}
	if _, err := Ensure(root); err != nil {
		t.Fatalf("Second Ensure failed: %v", err)
	}
}

func TestEnsureRejectsFileAtRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "occupied")
	if err := os.WriteFile(root, []byte("not a directory"), 0600); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	if _, err := Ensure(root); err == nil {
		t.Error("Ensure should fail when the root path is a regular file")
	}
}

func TestEncodeDecode(t *testing.T) {
	iv := bytes.Repeat([]byte{0x0F}, 16)
	ciphertext := []byte("arbitrary ciphertext bytes")

	data := Encode(iv, ciphertext)
	if strings.Contains(data, "\n") {
		t.Error("Encoded secret must be newline-free")
	}
	if len(data) < 32 {
		t.Fatalf("Encoded data too short: %d", len(data))
	}
	// The first 32 bytes are the hex IV, verbatim
	if data[:32] != "0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f" {
		t.Errorf("Unexpected IV prefix: %s", data[:32])
	}

	gotIV, gotCT, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(gotIV, iv) {
		t.Error("IV round trip mismatch")
	}
	if !bytes.Equal(gotCT, ciphertext) {
		t.Error("Ciphertext round trip mismatch")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"deadbeef",                              // shorter than the IV prefix
		strings.Repeat("zz", 16) + "YWJj",       // invalid hex in IV
		strings.Repeat("0f", 16) + "not@base64", // invalid base64 suffix
	}
	for _, data := range cases {
		if _, _, err := Decode(data); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q): expected ErrMalformed, got %v", data, err)
		}
	}
}

func TestWriteReadSecret(t *testing.T) {
	l, err := Ensure(filepath.Join(t.TempDir(), "sealbox"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	iv := bytes.Repeat([]byte{1}, 16)
	ciphertext := []byte("ciphertext")

	if err := l.WriteSecret("myapp", "db_password", iv, ciphertext); err != nil {
		t.Fatalf("WriteSecret failed: %v", err)
	}

	gotIV, gotCT, err := l.ReadSecret("myapp", "db_password")
	if err != nil {
		t.Fatalf("ReadSecret failed: %v", err)
	}
	if !bytes.Equal(gotIV, iv) || !bytes.Equal(gotCT, ciphertext) {
		t.Error("Secret round trip mismatch")
	}

	// Permissions on the label dir and secret file
	if runtime.GOOS != "windows" {
		info, err := os.Stat(l.SecretDir("myapp"))
		if err != nil {
			t.Fatalf("Stat secret dir failed: %v", err)
		}
		if info.Mode().Perm() != DirPermSecure {
			t.Errorf("Secret dir permissions: got %o, want %o", info.Mode().Perm(), DirPermSecure)
		}
		info, err = os.Stat(l.SecretPath("myapp", "db_password"))
		if err != nil {
			t.Fatalf("Stat secret file failed: %v", err)
		}
		if info.Mode().Perm()&0077 != 0 {
			t.Errorf("Secret file readable by group/other: %o", info.Mode().Perm())
		}
	}
}

func TestReadSecretNotFound(t *testing.T) {
	l, err := Ensure(filepath.Join(t.TempDir(), "sealbox"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if _, _, err := l.ReadSecret("nolabel", "nosecret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWriteSecretOverwriteLeavesNoTempFiles(t *testing.T) {
	l, err := Ensure(filepath.Join(t.TempDir(), "sealbox"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	iv := bytes.Repeat([]byte{2}, 16)
	if err := l.WriteSecret("app", "token", iv, []byte("first")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := l.WriteSecret("app", "token", iv, []byte("second")); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	_, ct, err := l.ReadSecret("app", "token")
	if err != nil {
		t.Fatalf("ReadSecret failed: %v", err)
	}
	if !bytes.Equal(ct, []byte("second")) {
		t.Error("Overwrite did not replace the secret content")
	}

	entries, err := os.ReadDir(l.SecretDir("app"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly one file after overwrite, found %d", len(entries))
	}
}

func TestRemoveSecret(t *testing.T) {
	l, err := Ensure(filepath.Join(t.TempDir(), "sealbox"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	iv := bytes.Repeat([]byte{3}, 16)
	if err := l.WriteSecret("app", "token", iv, []byte("data")); err != nil {
		t.Fatalf("WriteSecret failed: %v", err)
	}

	if err := l.RemoveSecret("app", "token"); err != nil {
		t.Fatalf("RemoveSecret failed: %v", err)
	}
	if l.HasSecret("app", "token") {
		t.Error("Secret should be gone after removal")
	}
	if err := l.RemoveSecret("app", "token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second removal, got %v", err)
	}
}

func TestSecretNamesAndLabels(t *testing.T) {
	l, err := Ensure(filepath.Join(t.TempDir(), "sealbox"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	iv := bytes.Repeat([]byte{4}, 16)
	for _, s := range []struct{ label, name string }{
		{"myapp", "db_password"},
		{"myapp", "api_token"},
		{"other", "password"},
	} {
		if err := l.WriteSecret(s.label, s.name, iv, []byte("x")); err != nil {
			t.Fatalf("WriteSecret(%s/%s) failed: %v", s.label, s.name, err)
		}
	}

	names, err := l.SecretNames("myapp")
	if err != nil {
		t.Fatalf("SecretNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 secrets under myapp, got %d: %v", len(names), names)
	}

	labels, err := Labels(l.SecretsDir())
	if err != nil {
		t.Fatalf("Labels failed: %v", err)
	}
	if len(labels) != 2 {
		t.Errorf("Expected 2 labels, got %d: %v", len(labels), labels)
	}

	// Unknown label lists as empty, not as an error
	names, err = l.SecretNames("missing")
	if err != nil || names != nil {
		t.Errorf("SecretNames(missing): got %v, %v; want nil, nil", names, err)
	}
}
