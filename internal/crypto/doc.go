// Package crypto provides cryptographic operations for sealbox.
//
// Secret encryption uses AES-256-CBC with:
//   - 32-byte random key generated once per label
//   - 16-byte random IV per encryption operation
//   - PKCS#7 padding
//
// Key export envelopes derive their encryption key from a passphrase
// using PBKDF2-HMAC-SHA256 with:
//   - 32-byte random salt (stored in the envelope)
//   - 210,000 iterations (OWASP minimum recommendation)
//
// All randomness comes from crypto/rand. Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package crypto
