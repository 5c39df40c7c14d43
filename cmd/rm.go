package cmd

import (
	"fmt"
	"os"
)

// Remove deletes secrets under a label
func Remove(label string, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one secret name\n")
		fmt.Fprintf(os.Stderr, "Usage: sealbox rm [-l label] <name> [name...]\n")
		os.Exit(1)
	}

	v := OpenVault()
	defer v.Close()

	for _, name := range names {
		if err := v.Remove(label, name); err != nil {
			HandleError(err)
		}
		fmt.Fprintf(os.Stderr, "Removed %s/%s\n", label, name)
	}
}
