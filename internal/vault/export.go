package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/security"
	"github.com/live-labs/sealbox/internal/store"
)

const envelopeVersion = 1

// keyEnvelope is the JSON format of an exported key: the raw key encrypted
// under a passphrase-derived key, using the same IV+ciphertext encoding as
// secret files.
type keyEnvelope struct {
	Version    int    `json:"version"`
	Label      string `json:"label"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	Data       string `json:"data"`
}

// ExportKey returns a passphrase-protected envelope of the label's key for
// manual backup. The label must already have a key; export never creates one.
func (v *Vault) ExportKey(label string, passphrase []byte) ([]byte, error) {
	if err := security.ValidateName(label); err != nil {
		return nil, fmt.Errorf("invalid label: %w", err)
	}

	key, err := v.keys.Load(label)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(key)

	kdf, err := crypto.NewKDF()
	if err != nil {
		return nil, err
	}
	derived := kdf.DeriveKey(passphrase)
	defer crypto.ClearBytes(derived)

	iv, err := crypto.GenerateIV()
	if err != nil {
		return nil, err
	}
	ciphertext, err := crypto.Encrypt(derived, iv, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt key: %w", err)
	}

	env := keyEnvelope{
		Version:    envelopeVersion,
		Label:      label,
		Salt:       hex.EncodeToString(kdf.Salt),
		Iterations: kdf.Iterations,
		Data:       store.Encode(iv, ciphertext),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return append(data, '\n'), nil
}

// ImportKey installs a key from an exported envelope. When label is empty
// the envelope's own label is used. Refuses to overwrite an existing key
// unless force is set.
func (v *Vault) ImportKey(envelope, passphrase []byte, label string, force bool) error {
	var env keyEnvelope
	if err := json.Unmarshal(envelope, &env); err != nil {
		return fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return fmt.Errorf("unsupported envelope version %d", env.Version)
	}

	salt, err := hex.DecodeString(env.Salt)
	if err != nil {
		return fmt.Errorf("failed to parse envelope salt: %w", err)
	}
	kdf := &crypto.KDF{Salt: salt, Iterations: env.Iterations}
	derived := kdf.DeriveKey(passphrase)
	defer crypto.ClearBytes(derived)

	iv, ciphertext, err := store.Decode(env.Data)
	if err != nil {
		return fmt.Errorf("failed to parse envelope data: %w", err)
	}

	key, err := crypto.Decrypt(derived, iv, ciphertext)
	if err != nil {
		return fmt.Errorf("failed to decrypt envelope (wrong passphrase?): %w", err)
	}
	defer crypto.ClearBytes(key)

	if label == "" {
		label = env.Label
	}
	if err := security.ValidateName(label); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}

	return v.keys.Put(label, key, force)
}
