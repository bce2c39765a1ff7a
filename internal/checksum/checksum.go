// Package checksum computes the SHA-256 digests used throughout the engine:
// per-file content checksums recorded on ValidationResult and the checkpoint
// integrity hashes used to detect tampered or truncated checkpoint files.
// Kept as a single narrow package because both call sites need nothing beyond
// crypto/sha256 — no ecosystem library adds value over the standard library
// for computing a hex-encoded SHA-256 digest (see DESIGN.md).
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Of returns the lowercase hex-encoded SHA-256 digest of r's entire content.
func Of(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// OfBytes returns the lowercase hex-encoded SHA-256 digest of b.
func OfBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
