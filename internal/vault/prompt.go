package vault

import (
	"fmt"
	"os"
	"syscall"

	"github.com/live-labs/sealbox/internal/crypto"
	"golang.org/x/term"
)

// ReadSecret reads a value from the terminal without echoing. The prompt is
// written to stderr so piped stdout carries nothing but secret output.
// term.ReadPassword restores the terminal state before returning on every
// path.
func ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	value, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return value, nil
}

// ReadSecretConfirm reads a secret twice and ensures both entries match.
// Returns ErrMismatch when they differ; the caller decides whether to retry.
func ReadSecretConfirm() ([]byte, error) {
	entry, err := ReadSecret("Enter secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(entry)

	confirm, err := ReadSecret("Confirm secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(confirm)

	if !crypto.ConstantTimeCompare(entry, confirm) {
		return nil, ErrMismatch
	}

	result := make([]byte, len(entry))
	copy(result, entry)
	return result, nil
}

// SecretFromEnv reads the secret value from SEALBOX_SECRET, for
// non-interactive use. Returns nil when unset.
func SecretFromEnv() []byte {
	value := os.Getenv(EnvSecret)
	if value == "" {
		return nil
	}
	// Return a copy so clearing the result cannot corrupt the environment copy
	result := make([]byte, len(value))
	copy(result, value)
	return result
}
