package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/live-labs/sealbox/internal/crypto"
	"github.com/live-labs/sealbox/internal/keyring"
)

// KeyringSave mirrors a label's key into the OS keyring
func KeyringSave(label string) {
	v := OpenVault()
	defer v.Close()

	key, err := v.Key(label)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(key)

	if err := keyring.SaveKey(label, hex.EncodeToString(key)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Key for %s saved to keyring\n", label)
}

// KeyringDelete removes a label's key from the OS keyring
func KeyringDelete(label string) {
	if err := keyring.DeleteKey(label); err != nil {
		fmt.Println("No key stored in keyring")
		return
	}
	fmt.Printf("Key for %s removed from keyring\n", label)
}

// KeyringStatus checks whether a label's key is mirrored in the OS keyring
func KeyringStatus(label string) {
	if keyring.HasKey(label) {
		fmt.Printf("Key for %s: stored in keyring\n", label)
	} else {
		fmt.Printf("Key for %s: not stored\n", label)
	}
}
