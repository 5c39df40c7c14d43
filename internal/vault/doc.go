// Package vault provides the main sealbox operations.
//
// A Vault is a session object constructed once per invocation; opening it
// ensures the on-disk layout exists, so later calls never re-check. Core
// operations:
//   - Get: decrypt and return a secret (the label's key is created lazily)
//   - Set: encrypt a secret under a fresh IV and store it atomically
//   - Remove, List, Labels, Status
//   - ExportKey/ImportKey: passphrase-protected key backup envelopes
//
// Interactive input goes through ReadSecret/ReadSecretConfirm, which prompt
// on stderr and suppress terminal echo.
package vault
