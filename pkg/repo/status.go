package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Carlomos7/grits/pkg/object"
)

// FileState classifies a working-tree path for status reporting.
type FileState int

const (
	StateStaged    FileState = iota // path has an index entry
	StateModified                   // tracked by HEAD, working copy differs
	StateUntracked                  // neither staged nor in HEAD
	StateDeleted                    // staged or in HEAD, missing on disk
)

// StatusEntry records the state of a single path.
type StatusEntry struct {
	Path  string
	State FileState
}

// Status compares the working tree against the index and the HEAD
// commit's file map and returns one entry per path that is not clean,
// sorted by path. Read-only: neither the index nor the working tree is
// touched.
func (r *Repo) Status() ([]StatusEntry, error) {
	entries, err := r.StagedFiles()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	headFiles := make(map[string]IndexEntry)
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if head != "" {
		c, err := r.GetCommit(head)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		headFiles = c.Files
	}

	// Collect working-tree files, skipping the control directory.
	workFiles := make(map[string]bool)
	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.GritsDir {
			return fs.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		workFiles[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("status: walk: %w", err)
	}

	result := make(map[string]FileState)

	for path := range workFiles {
		if _, staged := entries[path]; staged {
			result[path] = StateStaged
			continue
		}
		if headEntry, tracked := headFiles[path]; tracked {
			content, err := os.ReadFile(r.workTreePath(path))
			if err != nil {
				return nil, fmt.Errorf("status: read %q: %w", path, err)
			}
			if object.HashBytes(content) != headEntry.Hash {
				result[path] = StateModified
			}
			continue
		}
		result[path] = StateUntracked
	}

	// Staged or tracked paths missing from disk.
	for path := range entries {
		if !workFiles[path] {
			result[path] = StateDeleted
		}
	}
	for path := range headFiles {
		if _, staged := entries[path]; staged {
			continue
		}
		if !workFiles[path] {
			result[path] = StateDeleted
		}
	}

	out := make([]StatusEntry, 0, len(result))
	for path, state := range result {
		out = append(out, StatusEntry{Path: path, State: state})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
