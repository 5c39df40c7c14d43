package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealbox/internal/crypto"
)

// Set stores a secret value, overwriting any previous one. The value comes
// from SEALBOX_SECRET or an interactive confirmed prompt.
func Set(label, name string) {
	v := OpenVault()
	defer v.Close()

	value := ReadNewSecretOrExit()
	defer crypto.ClearBytes(value)

	if err := v.Set(label, name, string(value)); err != nil {
		HandleError(err)
	}

	fmt.Fprintf(os.Stderr, "Stored %s/%s\n", label, name)
}
