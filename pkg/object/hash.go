package object

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is the lowercase hex SHA-256 of an object's raw content. It is
// the sole identifier for stored objects; collisions are not defended
// against.
type Digest string

// Short returns the first 8 characters of the digest for display.
func (d Digest) Short() string {
	if len(d) > 8 {
		return string(d[:8])
	}
	return string(d)
}

// HashBytes computes the raw SHA-256 hash of data and returns it as a
// lowercase hex-encoded Digest. Deterministic, no side effects; used
// identically for file content and serialized commits.
func HashBytes(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest(hex.EncodeToString(sum[:]))
}
