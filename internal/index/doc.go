// Package index provides the BBolt metadata index for sealbox.
//
// Database structure uses two buckets:
//   - config: format version and creation timestamp
//   - secrets: one JSON entry per secret (label, name, timestamps,
//     ciphertext size)
//
// The index holds metadata only, never key material or ciphertext, so
// sealbox ls and sealbox status can run without touching secret files.
// The filesystem remains the source of truth; status reports drift.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
// Its file lock also serializes index access between concurrent sealbox
// processes.
package index
