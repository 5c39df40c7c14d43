package store

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/live-labs/sealbox/internal/crypto"
)

const (
	DirPermSecure  = 0700 // Directory: owner rwx only
	FilePermSecure = 0600 // File: owner rw only

	secretExt = ".enc"

	// Length of the hex-encoded IV prefix in a secret file
	ivHexLen = crypto.IVSize * 2
)

var (
	ErrNotFound  = errors.New("secret not found")
	ErrMalformed = errors.New("malformed secret file")
)

// Layout describes the sealbox directory tree under a single root
type Layout struct {
	Root string
}

// Ensure idempotently creates the root directory tree with owner-only
// permissions. It fails if any path is blocked or occupied by a regular file.
func Ensure(root string) (Layout, error) {
	l := Layout{Root: root}
	for _, dir := range []string{root, l.KeysDir(), l.SecretsDir()} {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return Layout{}, fmt.Errorf("%s exists but is not a directory", dir)
			}
			continue
		}
		if !os.IsNotExist(err) {
			return Layout{}, fmt.Errorf("failed to check %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, DirPermSecure); err != nil {
			return Layout{}, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return l, nil
}

// KeysDir returns the directory holding per-label key directories
func (l Layout) KeysDir() string {
	return filepath.Join(l.Root, "keys")
}

// SecretsDir returns the directory holding per-label secret directories
func (l Layout) SecretsDir() string {
	return filepath.Join(l.Root, "secrets")
}

// IndexPath returns the location of the metadata index database
func (l Layout) IndexPath() string {
	return filepath.Join(l.Root, "index.db")
}

// SecretDir returns the directory holding one label's secrets
func (l Layout) SecretDir(label string) string {
	return filepath.Join(l.SecretsDir(), label)
}

// SecretPath returns the file path of one secret
func (l Layout) SecretPath(label, name string) string {
	return filepath.Join(l.SecretDir(label), name+secretExt)
}

// Encode produces the on-disk secret representation: hex IV followed
// directly by base64 ciphertext, no separator, no newlines.
func Encode(iv, ciphertext []byte) string {
	return hex.EncodeToString(iv) + base64.StdEncoding.EncodeToString(ciphertext)
}

// Decode splits and decodes the on-disk secret representation
func Decode(data string) (iv, ciphertext []byte, err error) {
	if len(data) < ivHexLen {
		return nil, nil, fmt.Errorf("%w: too short", ErrMalformed)
	}
	iv, err = hex.DecodeString(data[:ivHexLen])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad IV: %v", ErrMalformed, err)
	}
	ciphertext, err = base64.StdEncoding.DecodeString(strings.TrimRight(data[ivHexLen:], "\n"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad ciphertext: %v", ErrMalformed, err)
	}
	return iv, ciphertext, nil
}

// WriteSecret atomically writes a secret file for label/name, creating the
// label directory if needed. The write goes through a temporary file in the
// same directory followed by a rename.
func (l Layout) WriteSecret(label, name string, iv, ciphertext []byte) error {
	dir := l.SecretDir(label)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("failed to create secret directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+secretExt+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if err := tmp.Chmod(FilePermSecure); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.WriteString(Encode(iv, ciphertext)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write secret: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, l.SecretPath(label, name)); err != nil {
		return fmt.Errorf("failed to replace secret file: %w", err)
	}
	return nil
}

// ReadSecret reads and decodes a secret file. Returns ErrNotFound if the
// secret does not exist.
func (l Layout) ReadSecret(label, name string) (iv, ciphertext []byte, err error) {
	data, err := os.ReadFile(l.SecretPath(label, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to read secret: %w", err)
	}
	return Decode(string(data))
}

// RemoveSecret deletes a secret file. Returns ErrNotFound if it does not exist.
func (l Layout) RemoveSecret(label, name string) error {
	err := os.Remove(l.SecretPath(label, name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove secret: %w", err)
	}
	return nil
}

// HasSecret reports whether a secret file exists
func (l Layout) HasSecret(label, name string) bool {
	_, err := os.Stat(l.SecretPath(label, name))
	return err == nil
}

// SecretNames lists the secret names stored under a label, in directory order
func (l Layout) SecretNames(label string) ([]string, error) {
	entries, err := os.ReadDir(l.SecretDir(label))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), secretExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), secretExt))
	}
	return names, nil
}

// Labels lists label directories present under dir (keys or secrets subtree)
func Labels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	var labels []string
	for _, e := range entries {
		if e.IsDir() {
			labels = append(labels, e.Name())
		}
	}
	return labels, nil
}
