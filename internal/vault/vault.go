package vault

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/index"
	"github.com/live-labs/sealbox/internal/keystore"
	"github.com/live-labs/sealbox/internal/security"
	"github.com/live-labs/sealbox/internal/store"
)

const (
	// Environment variables
	EnvRoot   = "SEALBOX_ROOT"   // overrides the root directory
	EnvLabel  = "SEALBOX_LABEL"  // overrides the default label
	EnvSecret = "SEALBOX_SECRET" // non-interactive secret value for set

	// DefaultSecretName is used when the caller names no secret
	DefaultSecretName = "password"

	rootDirName = ".sealbox"
)

var (
	ErrSecretNotFound = store.ErrNotFound
	ErrKeyNotFound    = keystore.ErrNotFound
	ErrKeyExists      = keystore.ErrExists
	ErrMismatch       = errors.New("entries do not match")
)

// Vault ties the key store, secret files and metadata index together for
// one session
type Vault struct {
	layout store.Layout
	keys   *keystore.Store
	idx    *index.Index
}

// DefaultRoot returns the root directory: SEALBOX_ROOT if set, otherwise
// ~/.sealbox
func DefaultRoot() (string, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, rootDirName), nil
}

// DefaultLabel returns the label used when the caller supplies none:
// SEALBOX_LABEL if set, otherwise the current username.
func DefaultLabel() string {
	if label := os.Getenv(EnvLabel); label != "" {
		return label
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		// Windows reports DOMAIN\user
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	return "default"
}

// Open ensures the root layout exists and opens the vault
func Open(root string) (*Vault, error) {
	layout, err := store.Ensure(root)
	if err != nil {
		return nil, err
	}

	idx, err := index.Open(layout.IndexPath())
	if err != nil {
		return nil, err
	}

	return &Vault{
		layout: layout,
		keys:   keystore.New(layout.KeysDir()),
		idx:    idx,
	}, nil
}

// Close releases resources held by the vault
func (v *Vault) Close() error {
	return v.idx.Close()
}

// Root returns the vault's root directory
func (v *Vault) Root() string {
	return v.layout.Root
}

// KeyPath returns the key file location for a label
func (v *Vault) KeyPath(label string) string {
	return v.keys.Path(label)
}

// Key returns the label's key, creating it if absent. The caller must clear
// the returned slice after use.
func (v *Vault) Key(label string) ([]byte, error) {
	if err := security.ValidateName(label); err != nil {
		return nil, fmt.Errorf("invalid label: %w", err)
	}
	return v.keys.Ensure(label)
}

func validateNames(label, name string) error {
	if err := security.ValidateName(label); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}
	if err := security.ValidateName(name); err != nil {
		return fmt.Errorf("invalid secret name: %w", err)
	}
	return nil
}

// Has reports whether a secret exists
func (v *Vault) Has(label, name string) bool {
	return v.layout.HasSecret(label, name)
}

// Get decrypts and returns a secret. The label's key is created first if it
// does not exist yet; a missing secret returns ErrSecretNotFound.
func (v *Vault) Get(label, name string) (string, error) {
	if err := validateNames(label, name); err != nil {
		return "", err
	}

	// Key creation is a precondition for any decrypt
	key, err := v.keys.Ensure(label)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(key)

	iv, ciphertext, err := v.layout.ReadSecret(label, name)
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.Decrypt(key, iv, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s/%s: %w", label, name, err)
	}
	return string(plaintext), nil
}

// Set encrypts a secret under a fresh IV and stores it atomically,
// overwriting any previous value
func (v *Vault) Set(label, name, value string) error {
	if err := validateNames(label, name); err != nil {
		return err
	}

	key, err := v.keys.Ensure(label)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(key)

	iv, err := crypto.GenerateIV()
	if err != nil {
		return err
	}

	ciphertext, err := crypto.Encrypt(key, iv, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to encrypt %s/%s: %w", label, name, err)
	}

	if err := v.layout.WriteSecret(label, name, iv, ciphertext); err != nil {
		return err
	}

	size := int64(len(store.Encode(iv, ciphertext)))
	if err := v.idx.Put(label, name, size); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}
	return nil
}

// Remove deletes a secret and its index entry
func (v *Vault) Remove(label, name string) error {
	if err := validateNames(label, name); err != nil {
		return err
	}

	if err := v.layout.RemoveSecret(label, name); err != nil {
		return err
	}
	if err := v.idx.Delete(label, name); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}
	return nil
}

// SecretInfo describes one stored secret for listings
type SecretInfo struct {
	Label    string
	Name     string
	Size     int64
	Created  time.Time
	Modified time.Time
	Indexed  bool // false when the file exists but the index has no entry
}

// List returns the secrets stored under a label. The filesystem is the
// source of truth; index metadata is joined in where present.
func (v *Vault) List(label string) ([]SecretInfo, error) {
	if err := security.ValidateName(label); err != nil {
		return nil, fmt.Errorf("invalid label: %w", err)
	}

	names, err := v.layout.SecretNames(label)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	infos := make([]SecretInfo, 0, len(names))
	for _, name := range names {
		info := SecretInfo{Label: label, Name: name}
		if fi, err := os.Stat(v.layout.SecretPath(label, name)); err == nil {
			info.Size = fi.Size()
			info.Modified = fi.ModTime()
		}
		if entry, err := v.idx.Get(label, name); err == nil && entry != nil {
			info.Created = entry.Created
			info.Modified = entry.Modified
			info.Indexed = true
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Labels returns every label that owns a key or at least one secret, sorted
func (v *Vault) Labels() ([]string, error) {
	keyLabels, err := store.Labels(v.layout.KeysDir())
	if err != nil {
		return nil, err
	}
	secretLabels, err := store.Labels(v.layout.SecretsDir())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var labels []string
	for _, l := range append(keyLabels, secretLabels...) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// LabelStatus summarizes one label for status output
type LabelStatus struct {
	Label     string
	HasKey    bool
	Secrets   int
	Unindexed int // secret files with no index entry
}

// Status describes the vault for status output
type Status struct {
	Root     string
	RootMode os.FileMode
	Labels   []LabelStatus
}

// Status inspects the vault without touching any secret plaintext
func (v *Vault) Status() (*Status, error) {
	st := &Status{Root: v.layout.Root}

	if info, err := os.Stat(v.layout.Root); err == nil {
		st.RootMode = info.Mode().Perm()
	}

	labels, err := v.Labels()
	if err != nil {
		return nil, err
	}
	for _, label := range labels {
		ls := LabelStatus{
			Label:  label,
			HasKey: v.keys.Exists(label),
		}
		names, err := v.layout.SecretNames(label)
		if err != nil {
			return nil, err
		}
		ls.Secrets = len(names)
		for _, name := range names {
			entry, err := v.idx.Get(label, name)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				ls.Unindexed++
			}
		}
		st.Labels = append(st.Labels, ls)
	}
	return st, nil
}
