package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/object"
)

// indexVersion is the on-disk format version of the staging index.
const indexVersion = 1

// IndexEntry records the staged state of a single file.
type IndexEntry struct {
	Hash      object.Digest `json:"hash"`
	Timestamp string        `json:"timestamp"`
	Size      int64         `json:"size"`
}

// Index is the staging area: a mapping from repo-relative path to
// entry, persisted as a single JSON document.
type Index struct {
	Version int                   `json:"version"`
	Entries map[string]IndexEntry `json:"entries"`
}

func newIndex() *Index {
	return &Index{Version: indexVersion, Entries: make(map[string]IndexEntry)}
}

// ReadIndex loads the staging index from .grits/index. A missing or
// unparsable file is downgraded to a fresh empty index with a
// diagnostic, never a hard failure.
func (r *Repo) ReadIndex() (*Index, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newIndex(), nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		r.Logger.Warn("index unreadable, starting fresh", zap.Error(err))
		return newIndex(), nil
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]IndexEntry)
	}
	return &idx, nil
}

// WriteIndex atomically replaces the whole index document.
func (r *Repo) WriteIndex(idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("write index: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(r.GritsDir, ".index-tmp-*")
	if err != nil {
		return fmt.Errorf("write index: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write index: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write index: close: %w", err)
	}

	if err := os.Rename(tmpName, r.indexPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write index: rename: %w", err)
	}
	return nil
}

// Add stages the given files: each is hashed, its content stored in the
// object store, and its index entry upserted (last add wins). The whole
// document is rewritten once. Paths outside the repository root and
// missing files are rejected before anything is stored.
func (r *Repo) Add(paths []string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	for _, p := range paths {
		rel, err := r.repoRelPath(p)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}

		abs := r.workTreePath(rel)
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("add %q: %w", rel, ErrFileNotFound)
			}
			return fmt.Errorf("add: stat %q: %w", rel, err)
		}

		content, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("add: read %q: %w", rel, err)
		}

		d, err := r.Store.Put(content)
		if err != nil {
			return fmt.Errorf("add: store %q: %w", rel, err)
		}

		idx.Entries[rel] = IndexEntry{
			Hash:      d,
			Timestamp: time.Now().Format(time.RFC3339),
			Size:      info.Size(),
		}

		r.Logger.Info("staged file", zap.String("path", rel), zap.String("digest", string(d)))
	}

	if err := r.WriteIndex(idx); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// StagedFiles returns the current index entries keyed by path.
func (r *Repo) StagedFiles() (map[string]IndexEntry, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}
	return idx.Entries, nil
}

// IsStaged reports whether the given path has a staging entry.
func (r *Repo) IsStaged(path string) (bool, error) {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return false, err
	}
	entries, err := r.StagedFiles()
	if err != nil {
		return false, err
	}
	_, ok := entries[rel]
	return ok, nil
}

// ClearIndex persists an empty index document.
func (r *Repo) ClearIndex() error {
	return r.WriteIndex(newIndex())
}
