package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/vault"
)

// ExportKey writes a passphrase-protected envelope of a label's key to file
func ExportKey(label, file string) {
	v := OpenVault()
	defer v.Close()

	passphrase, err := readPassphraseConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	envelope, err := v.ExportKey(label, passphrase)
	if err != nil {
		HandleError(err)
	}

	if err := os.WriteFile(file, envelope, 0600); err != nil {
		HandleError(fmt.Errorf("failed to write envelope: %w", err))
	}
	fmt.Fprintf(os.Stderr, "Exported key for %s to %s\n", label, file)
}

// ImportKey installs a key from an exported envelope file
func ImportKey(label, file string, force bool) {
	v := OpenVault()
	defer v.Close()

	envelope, err := os.ReadFile(file)
	if err != nil {
		HandleError(fmt.Errorf("failed to read envelope: %w", err))
	}

	passphrase, err := vault.ReadSecret("Enter passphrase: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	if err := v.ImportKey(envelope, passphrase, label, force); err != nil {
		HandleError(err)
	}
	fmt.Fprintln(os.Stderr, "Key imported")
}

// readPassphraseConfirm prompts for an export passphrase twice with the
// same bounded retry as secret entry
func readPassphraseConfirm() ([]byte, error) {
	for attempt := 1; ; attempt++ {
		entry, err := vault.ReadSecret("Enter passphrase: ")
		if err != nil {
			return nil, err
		}
		confirm, err := vault.ReadSecret("Confirm passphrase: ")
		if err != nil {
			crypto.ClearBytes(entry)
			return nil, err
		}
		if crypto.ConstantTimeCompare(entry, confirm) {
			crypto.ClearBytes(confirm)
			return entry, nil
		}
		crypto.ClearBytes(entry)
		crypto.ClearBytes(confirm)
		if attempt >= confirmAttempts {
			return nil, vault.ErrMismatch
		}
		fmt.Fprintln(os.Stderr, "Entries do not match, try again")
	}
}
