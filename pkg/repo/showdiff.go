package repo

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/diff"
	"github.com/Carlomos7/grits/pkg/object"
)

// ChangeKind classifies how a file changed relative to the parent
// commit.
type ChangeKind int

const (
	ChangeNew      ChangeKind = iota // no parent content
	ChangeModified                   // parent content differs
)

// FileChange describes one changed file in a commit. For ChangeNew,
// Text holds the file's full content (rendered as all additions by the
// caller); for ChangeModified it holds a unified diff.
type FileChange struct {
	Path string
	Kind ChangeKind
	Text string
}

// ShowDiff loads a commit and computes its changes against the parent.
// Every path in the commit's file map is compared with the parent's
// version of the same path; paths present only in the parent are not
// reported. Files whose objects are missing are logged and skipped so
// the rest of the diff renders.
func (r *Repo) ShowDiff(d object.Digest) (*Commit, []FileChange, error) {
	c, err := r.GetCommit(d)
	if err != nil {
		return nil, nil, err
	}

	var parent *Commit
	if c.Parent != "" {
		parent, err = r.GetCommit(c.Parent)
		if err != nil {
			r.Logger.Warn("parent commit unreadable, diffing against empty",
				zap.String("digest", string(c.Parent)),
				zap.Error(err))
			parent = nil
		}
	}

	paths := make([]string, 0, len(c.Files))
	for p := range c.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var changes []FileChange
	for _, path := range paths {
		current, err := r.Store.Get(c.Files[path].Hash)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				r.Logger.Warn("skipping file with missing object",
					zap.String("path", path),
					zap.String("digest", string(c.Files[path].Hash)))
				continue
			}
			return nil, nil, fmt.Errorf("diff %q: %w", path, err)
		}

		parentContent := r.parentContent(parent, path)

		if parentContent == "" {
			changes = append(changes, FileChange{
				Path: path,
				Kind: ChangeNew,
				Text: string(current),
			})
			continue
		}

		text := diff.Unified(parentContent, string(current), "a/"+path, "b/"+path)
		if text == "" {
			continue // unchanged since parent
		}
		changes = append(changes, FileChange{
			Path: path,
			Kind: ChangeModified,
			Text: text,
		})
	}

	return c, changes, nil
}

// parentContent fetches the parent commit's content for path, or ""
// when there is no parent, the path is new, or its object is missing.
func (r *Repo) parentContent(parent *Commit, path string) string {
	if parent == nil {
		return ""
	}
	entry, ok := parent.Files[path]
	if !ok {
		return ""
	}
	content, err := r.Store.Get(entry.Hash)
	if err != nil {
		r.Logger.Warn("parent object unreadable",
			zap.String("path", path),
			zap.String("digest", string(entry.Hash)),
			zap.Error(err))
		return ""
	}
	return string(content)
}
