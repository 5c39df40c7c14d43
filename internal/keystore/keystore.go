package keystore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/live-labs/sealbox/internal/crypto"
)

const (
	KeyFileName = "private.key"

	dirPerm     = 0700
	keyFilePerm = 0400
)

var (
	ErrNotFound = errors.New("key not found")
	ErrExists   = errors.New("key already exists")
	ErrCorrupt  = errors.New("corrupt key file")
)

// Store persists per-label keys under a single keys directory
type Store struct {
	dir string
}

// New creates a Store rooted at the given keys directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the key file location for a label
func (s *Store) Path(label string) string {
	return filepath.Join(s.dir, label, KeyFileName)
}

// Exists reports whether a label already has a key
func (s *Store) Exists(label string) bool {
	_, err := os.Stat(s.Path(label))
	return err == nil
}

// Ensure returns the label's key, generating and persisting a new one if the
// label has none. Once created the key never changes. If two processes race
// here, exclusive creation guarantees both end up with the same key.
func (s *Store) Ensure(label string) ([]byte, error) {
	key, err := s.Load(label)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(s.dir, label), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	key, err = crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(s.Path(label), os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFilePerm)
	if err != nil {
		if os.IsExist(err) {
			// Another process won the race; use its key
			crypto.ClearBytes(key)
			return s.Load(label)
		}
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}

	if _, err := f.WriteString(hex.EncodeToString(key)); err != nil {
		f.Close()
		os.Remove(s.Path(label))
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.Path(label))
		return nil, fmt.Errorf("failed to close key file: %w", err)
	}

	return key, nil
}

// Load reads and decodes an existing key. Returns ErrNotFound if the label
// has no key, ErrCorrupt if the file content is not a valid key.
func (s *Store) Load(label string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(label))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrCorrupt, len(key), crypto.KeySize)
	}
	return key, nil
}

// Put writes a key for a label, for key import. Refuses to overwrite an
// existing key unless force is set.
func (s *Store) Put(label string, key []byte, force bool) error {
	if len(key) != crypto.KeySize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrCorrupt, len(key), crypto.KeySize)
	}

	if s.Exists(label) {
		if !force {
			return ErrExists
		}
		// Key files are read-only, so remove before recreating
		if err := os.Remove(s.Path(label)); err != nil {
			return fmt.Errorf("failed to replace key file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Join(s.dir, label), dirPerm); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	f, err := os.OpenFile(s.Path(label), os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.WriteString(hex.EncodeToString(key)); err != nil {
		f.Close()
		os.Remove(s.Path(label))
		return fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.Path(label))
		return fmt.Errorf("failed to close key file: %w", err)
	}
	return nil
}
