package cmd

import (
	"fmt"
)

// Status shows the vault location, permissions and per-label summary.
// Touches no secret plaintext.
func Status() {
	v := OpenVault()
	defer v.Close()

	st, err := v.Status()
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Vault: %s (mode %o)\n", st.Root, st.RootMode)
	if st.RootMode&0077 != 0 {
		fmt.Println("warning: vault root is accessible by group/other")
	}

	if len(st.Labels) == 0 {
		fmt.Println("No labels in vault")
		return
	}

	fmt.Println("Labels:")
	for _, ls := range st.Labels {
		keyState := "key present"
		if !ls.HasKey {
			keyState = "no key"
		}
		fmt.Printf("  %s: %d secret(s), %s\n", ls.Label, ls.Secrets, keyState)
		if ls.Unindexed > 0 {
			fmt.Printf("    %d secret file(s) missing from the index\n", ls.Unindexed)
		}
	}
}
