package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// ErrNotFound reports that no object exists for a digest. A missing
// object during a single-item Get is a normal outcome; callers decide
// whether it is fatal.
var ErrNotFound = errors.New("object not found")

// defaultCacheSize bounds the in-memory content cache. Objects are
// immutable, so cached entries never go stale.
const defaultCacheSize = 256

// Store is a content-addressed object store with a flat on-disk layout:
// objects/<digest>, one file per object, raw content. Objects are
// immutable once written and are never deleted by normal operation.
type Store struct {
	root   string
	cache  *lru.Cache[Digest, []byte]
	logger *zap.Logger
}

// NewStore creates a Store whose objects live under root/objects. The
// directory is created lazily on first write. A nil logger is replaced
// with a no-op logger.
func NewStore(root string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[Digest, []byte](defaultCacheSize)
	return &Store{root: root, cache: cache, logger: logger}
}

// objectPath returns the filesystem path for a given digest.
func (s *Store) objectPath(d Digest) string {
	return filepath.Join(s.root, "objects", string(d))
}

// Has reports whether the store contains an object with the given digest.
func (s *Store) Has(d Digest) bool {
	if s.cache.Contains(d) {
		return true
	}
	_, err := os.Stat(s.objectPath(d))
	return err == nil
}

// Put stores content under its digest and returns the digest. Writing
// the same content twice is a no-op after the first: an existing digest
// is treated as success and the stored object is never rewritten.
// Writes are atomic: data goes to a temp file and is renamed into place.
func (s *Store) Put(content []byte) (Digest, error) {
	d := HashBytes(content)

	// Fast path: already exists.
	if s.Has(d) {
		return d, nil
	}

	dir := filepath.Join(s.root, "objects")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object put mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object put tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object put write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object put close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(d)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object put rename: %w", err)
	}

	s.logger.Debug("stored object", zap.String("digest", string(d)), zap.Int("size", len(content)))
	return d, nil
}

// Get retrieves an object's content by digest. A missing object yields
// ErrNotFound; other I/O errors propagate.
func (s *Store) Get(d Digest) ([]byte, error) {
	if content, ok := s.cache.Get(d); ok {
		return content, nil
	}

	content, err := os.ReadFile(s.objectPath(d))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", d, ErrNotFound)
		}
		return nil, fmt.Errorf("object get %s: %w", d, err)
	}

	s.cache.Add(d, content)
	return content, nil
}

// RestoreFiles writes the content of each path→digest entry to
// destRoot/path, creating parent directories as needed. Entries whose
// object is missing are logged and skipped so the rest of the restore
// can proceed; any other I/O failure aborts. Returns the number of
// files written.
func (s *Store) RestoreFiles(files map[string]Digest, destRoot string) (int, error) {
	restored := 0
	for path, d := range files {
		content, err := s.Get(d)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.logger.Warn("skipping file with missing object",
					zap.String("path", path),
					zap.String("digest", string(d)))
				continue
			}
			return restored, fmt.Errorf("restore %q: %w", path, err)
		}

		dest := filepath.Join(destRoot, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return restored, fmt.Errorf("restore %q: mkdir: %w", path, err)
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return restored, fmt.Errorf("restore %q: write: %w", path, err)
		}
		restored++
	}
	return restored, nil
}
