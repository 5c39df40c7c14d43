package cmd

import (
	"errors"
	"fmt"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/vault"
)

// Get prints a secret's plaintext to stdout, prompting to create it first
// when it does not exist yet
func Get(label, name string) {
	v := OpenVault()
	defer v.Close()

	value, err := v.Get(label, name)
	if errors.Is(err, vault.ErrSecretNotFound) {
		// First request for this secret: capture it interactively, then
		// fall through to the normal read path
		entry := ReadNewSecretOrExit()
		if err := v.Set(label, name, string(entry)); err != nil {
			crypto.ClearBytes(entry)
			HandleError(err)
		}
		crypto.ClearBytes(entry)

		value, err = v.Get(label, name)
	}
	if err != nil {
		HandleError(err)
	}

	fmt.Println(value)
}
