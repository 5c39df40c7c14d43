// Package store manages the on-disk layout and secret file format for sealbox.
//
// Layout under the root directory (mode 0700):
//   - keys/<label>/private.key  hex-encoded 256-bit key, owner-read-only
//   - secrets/<label>/<name>.enc encrypted secret
//   - index.db                  bbolt metadata index
//
// Secret file format: 32 ASCII hex characters (the 16-byte IV) immediately
// followed by newline-free base64 ciphertext, no separator. Byte offset 32
// marks the boundary. This matches existing installations; do not change it
// without a format version bump.
//
// Writes go to a temporary file in the target directory followed by a
// rename, so a crashed write never leaves a truncated secret behind.
package store
