package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/security"
	"github.com/live-labs/sealbox/internal/vault"
)

// confirmAttempts bounds the entry/confirmation retry loop
const confirmAttempts = 3

// OpenVault opens the vault at the default root, exiting on failure
func OpenVault() *vault.Vault {
	root, err := vault.DefaultRoot()
	if err != nil {
		HandleError(err)
	}
	v, err := vault.Open(root)
	if err != nil {
		HandleError(err)
	}
	return v
}

// ResolveLabel applies the label default chain: -l flag, SEALBOX_LABEL,
// current username
func ResolveLabel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return vault.DefaultLabel()
}

// ResolveName returns the first positional argument or the default secret name
func ResolveName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return vault.DefaultSecretName
}

// ReadNewSecret obtains a secret value for storage: SEALBOX_SECRET if set,
// otherwise an interactive prompt with confirmation, retrying a bounded
// number of times on mismatch.
// The caller is responsible for calling crypto.ClearBytes on the result.
func ReadNewSecret() ([]byte, error) {
	if value := vault.SecretFromEnv(); value != nil {
		return value, nil
	}

	for attempt := 1; ; attempt++ {
		value, err := vault.ReadSecretConfirm()
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, vault.ErrMismatch) || attempt >= confirmAttempts {
			return nil, err
		}
		fmt.Fprintln(os.Stderr, "Entries do not match, try again")
	}
}

// ReadNewSecretOrExit is like ReadNewSecret but exits on error
func ReadNewSecretOrExit() []byte {
	value, err := ReadNewSecret()
	if err != nil {
		HandleError(err)
	}
	return value
}

// HandleError prints a diagnostic for common errors and exits non-zero
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrSecretNotFound):
		fmt.Fprintf(os.Stderr, "Error: secret not found\n")
		fmt.Fprintf(os.Stderr, "Use 'sealbox set' to store it first\n")
	case errors.Is(err, vault.ErrKeyNotFound):
		fmt.Fprintf(os.Stderr, "Error: no key for this label\n")
		fmt.Fprintf(os.Stderr, "A key is created on the first 'sealbox set' or 'sealbox get'\n")
	case errors.Is(err, vault.ErrKeyExists):
		fmt.Fprintf(os.Stderr, "Error: this label already has a key\n")
		fmt.Fprintf(os.Stderr, "Pass --force to replace it (existing secrets become unreadable)\n")
	case errors.Is(err, vault.ErrMismatch):
		fmt.Fprintf(os.Stderr, "Error: entries do not match\n")
	case errors.Is(err, security.ErrInvalidName), errors.Is(err, security.ErrEmptyName):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Labels and secret names must be plain file names\n")
	case errors.Is(err, crypto.ErrInvalidPadding), errors.Is(err, crypto.ErrInvalidCiphertext):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "The secret file is corrupt or was encrypted with a different key\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
