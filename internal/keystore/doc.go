// Package keystore generates and persists one symmetric key per label.
//
// Each label owns keys/<label>/private.key: a 256-bit random key stored as
// 64 hex characters, created lazily on first use and immutable afterwards.
// Creation uses O_EXCL so two racing processes cannot both write the file;
// the loser reads the winner's key. Key files are owner-read-only (0400),
// key directories owner-only (0700).
package keystore
