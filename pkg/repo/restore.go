package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/object"
)

// RestoreOptions selects the source file map and an optional path
// filter for Restore. Exactly one source applies: the index when
// Staged is set, otherwise the Source commit (HEAD when empty).
type RestoreOptions struct {
	Source object.Digest
	Staged bool
	Paths  []string
}

// Restore writes selected files' stored content into the working tree.
// Any file about to be overwritten is first copied verbatim into the
// backup area, unconditionally, so the pre-restore state is always
// recoverable. Requested paths absent from the source are warned about
// and skipped; a missing object skips that file; any other I/O failure
// aborts. Returns the number of files actually restored.
func (r *Repo) Restore(opts RestoreOptions) (int, error) {
	fileMap, err := r.resolveFileMap(opts)
	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}

	targets, err := r.resolveRestoreTargets(opts.Paths, fileMap)
	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}

	restored := 0
	for _, rel := range targets {
		if err := r.backupFile(rel, r.backupDir()); err != nil {
			return restored, fmt.Errorf("restore: backup %q: %w", rel, err)
		}

		content, err := r.Store.Get(fileMap[rel])
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				r.Logger.Warn("skipping file with missing object",
					zap.String("path", rel),
					zap.String("digest", string(fileMap[rel])))
				continue
			}
			return restored, fmt.Errorf("restore %q: %w", rel, err)
		}

		abs := r.workTreePath(rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return restored, fmt.Errorf("restore %q: mkdir: %w", rel, err)
		}
		if err := os.WriteFile(abs, content, 0o644); err != nil {
			return restored, fmt.Errorf("restore %q: write: %w", rel, err)
		}
		restored++
	}

	r.Logger.Info("restore complete", zap.Int("files", restored))
	return restored, nil
}

// resolveFileMap reads the path→digest mapping from the index or from
// the source commit.
func (r *Repo) resolveFileMap(opts RestoreOptions) (map[string]object.Digest, error) {
	fileMap := make(map[string]object.Digest)

	if opts.Staged {
		entries, err := r.StagedFiles()
		if err != nil {
			return nil, err
		}
		for path, e := range entries {
			fileMap[path] = e.Hash
		}
		return fileMap, nil
	}

	source := opts.Source
	if source == "" {
		head, err := r.Head()
		if err != nil {
			return nil, err
		}
		source = head
	}
	if source == "" {
		return nil, ErrInvalidCommitTarget
	}

	c, err := r.GetCommit(source)
	if err != nil {
		return nil, err
	}
	for path, e := range c.Files {
		fileMap[path] = e.Hash
	}
	return fileMap, nil
}

// resolveRestoreTargets normalizes the requested paths and filters them
// against the source file map. With no paths, every file in the source
// is restored. Requested paths the source does not track are skipped
// with a warning, not an error.
func (r *Repo) resolveRestoreTargets(paths []string, fileMap map[string]object.Digest) ([]string, error) {
	var targets []string

	if len(paths) == 0 {
		for path := range fileMap {
			targets = append(targets, path)
		}
	} else {
		for _, p := range paths {
			rel, err := r.repoRelPath(p)
			if err != nil {
				return nil, err
			}
			if _, ok := fileMap[rel]; !ok {
				r.Logger.Warn("path not tracked by restore source", zap.String("path", rel))
				continue
			}
			targets = append(targets, rel)
		}
	}

	sort.Strings(targets)
	return targets, nil
}

// backupFile copies the working-tree file at rel into backupRoot,
// preserving its relative path. A file that does not exist needs no
// backup.
func (r *Repo) backupFile(rel, backupRoot string) error {
	src := r.workTreePath(rel)
	content, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	dest := filepath.Join(backupRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, content, 0o644)
}

// RestoreHard forces the working tree to match HEAD exactly: the whole
// working tree (minus the control directory) is snapshotted into the
// backup area, every HEAD-tracked file currently on disk is deleted,
// all files are rewritten from HEAD, and the index is cleared. Untracked
// files are left untouched. The snapshot happens before any deletion;
// unexpected I/O failures abort rather than half-apply.
func (r *Repo) RestoreHard() error {
	head, err := r.Head()
	if err != nil {
		return fmt.Errorf("hard reset: %w", err)
	}
	if head == "" {
		return fmt.Errorf("hard reset: %w", ErrInvalidCommitTarget)
	}

	c, err := r.GetCommit(head)
	if err != nil {
		return fmt.Errorf("hard reset: %w", err)
	}

	if err := r.snapshotWorkingTree(); err != nil {
		return fmt.Errorf("hard reset: snapshot working tree: %w", err)
	}

	// Delete tracked files before rewriting so stale content never
	// survives a path-case or directory change.
	for path := range c.Files {
		abs := r.workTreePath(path)
		if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("hard reset: remove %q: %w", path, err)
		}
		r.removeEmptyParents(filepath.Dir(abs))
	}

	fileMap := make(map[string]object.Digest, len(c.Files))
	for path, e := range c.Files {
		fileMap[path] = e.Hash
	}
	restored, err := r.Store.RestoreFiles(fileMap, r.RootDir)
	if err != nil {
		return fmt.Errorf("hard reset: %w", err)
	}

	if err := r.ClearIndex(); err != nil {
		return fmt.Errorf("hard reset: %w", err)
	}

	r.Logger.Info("hard reset complete",
		zap.String("head", string(head)),
		zap.Int("files", restored))
	return nil
}

// snapshotWorkingTree copies every working-tree file (excluding the
// control directory) into backup/working_tree for recovery.
func (r *Repo) snapshotWorkingTree() error {
	snapshotRoot := filepath.Join(r.backupDir(), "working_tree")

	return filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
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
		return r.backupFile(filepath.ToSlash(rel), snapshotRoot)
	})
}

// removeEmptyParents removes empty directories up to (but not
// including) the repository root.
func (r *Repo) removeEmptyParents(dir string) {
	for {
		if dir == r.RootDir || !strings.HasPrefix(dir, r.RootDir) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}
