// Package keyring mirrors label keys into the OS keyring as a recoverable
// backup. The key files on disk remain authoritative.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "sealbox"

// SaveKey stores a label's key (hex-encoded) in the OS keyring
func SaveKey(label string, keyHex string) error {
	return keyring.Set(serviceName, label, keyHex)
}

// GetKey retrieves a label's key (hex-encoded) from the OS keyring
func GetKey(label string) (string, error) {
	return keyring.Get(serviceName, label)
}

// DeleteKey removes a label's key from the OS keyring
func DeleteKey(label string) error {
	return keyring.Delete(serviceName, label)
}

// HasKey checks if a key is stored in the keyring for a label
func HasKey(label string) bool {
	_, err := keyring.Get(serviceName, label)
	return err == nil
}
