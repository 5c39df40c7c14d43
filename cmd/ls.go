package cmd

import (
	"fmt"
	"time"
)

// Ls lists secrets under a label, or all labels when label is empty
func Ls(label string) {
	v := OpenVault()
	defer v.Close()

	if label == "" {
		labels, err := v.Labels()
		if err != nil {
			HandleError(err)
		}
		if len(labels) == 0 {
			fmt.Println("No labels in vault")
			return
		}
		fmt.Println("Labels:")
		for _, l := range labels {
			infos, err := v.List(l)
			if err != nil {
				HandleError(err)
			}
			fmt.Printf("  %s (%d secret(s))\n", l, len(infos))
		}
		return
	}

	infos, err := v.List(label)
	if err != nil {
		HandleError(err)
	}
	if len(infos) == 0 {
		fmt.Printf("No secrets under label %s\n", label)
		return
	}

	fmt.Printf("Secrets under %s:\n", label)
	for _, info := range infos {
		if info.Modified.IsZero() {
			fmt.Printf("  %s (%d bytes)\n", info.Name, info.Size)
			continue
		}
		fmt.Printf("  %s (%d bytes, modified %s)\n",
			info.Name, info.Size, info.Modified.Format(time.RFC3339))
	}
}
