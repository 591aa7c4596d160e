package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carlomos7/grits/pkg/object"
)

// Signatures are detached: they live under .grits/signatures/<digest>
// so signing never alters the commit serialization that digests are
// computed over.

func (r *Repo) signaturePath(d object.Digest) string {
	return filepath.Join(r.GritsDir, "signatures", string(d))
}

// StoreSignature persists the encoded signature for a commit digest.
func (r *Repo) StoreSignature(d object.Digest, signature string) error {
	dir := filepath.Join(r.GritsDir, "signatures")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store signature: mkdir: %w", err)
	}
	if err := os.WriteFile(r.signaturePath(d), []byte(signature), 0o644); err != nil {
		return fmt.Errorf("store signature %s: %w", d, err)
	}
	return nil
}

// LoadSignature returns the stored signature for a commit digest, or an
// error when the commit is unsigned.
func (r *Repo) LoadSignature(d object.Digest) (string, error) {
	data, err := os.ReadFile(r.signaturePath(d))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("commit %s is not signed", d.Short())
		}
		return "", fmt.Errorf("load signature %s: %w", d, err)
	}
	return string(data), nil
}
