package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/object"
)

// Commit is an immutable snapshot record. Its digest is the hash of its
// canonical JSON serialization: struct fields marshal in declaration
// order and encoding/json sorts map keys, so identical logical content
// always hashes identically.
type Commit struct {
	Parent    object.Digest         `json:"parent"` // empty for the root commit
	Timestamp string                `json:"timestamp"`
	Message   string                `json:"message"`
	Files     map[string]IndexEntry `json:"files"` // full snapshot, not a delta
}

// MarshalCommit produces the canonical serialization that commit
// digests are computed over.
func MarshalCommit(c *Commit) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// CreateCommit snapshots the current index into a new commit, stores
// it, advances HEAD, and clears the index. An empty index yields
// ErrEmptyStage; a blank message yields ErrEmptyMessage.
func (r *Repo) CreateCommit(message string) (object.Digest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("commit: %w", ErrEmptyMessage)
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if len(idx.Entries) == 0 {
		return "", fmt.Errorf("commit: %w", ErrEmptyStage)
	}

	parent, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	c := &Commit{
		Parent:    parent,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   message,
		Files:     idx.Entries,
	}

	data, err := MarshalCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: marshal: %w", err)
	}
	d, err := r.Store.Put(data)
	if err != nil {
		return "", fmt.Errorf("commit: store: %w", err)
	}

	// HEAD advance and index clear form one logical transaction. A crash
	// in between leaves stale staged entries, which the next commit
	// simply re-snapshots.
	if err := r.SetHead(d); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if err := r.ClearIndex(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	r.Logger.Info("created commit",
		zap.String("digest", string(d)),
		zap.Int("files", len(c.Files)))
	return d, nil
}

// GetCommit reads and deserializes a commit. A missing object yields
// ErrCommitNotFound; content that does not parse as a commit yields
// ErrMalformedCommit.
func (r *Repo) GetCommit(d object.Digest) (*Commit, error) {
	data, err := r.Store.Get(d)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("commit %s: %w", d, ErrCommitNotFound)
		}
		return nil, fmt.Errorf("get commit %s: %w", d, err)
	}

	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		r.Logger.Warn("invalid commit format",
			zap.String("digest", string(d)),
			zap.Error(err))
		return nil, fmt.Errorf("commit %s: %w", d, ErrMalformedCommit)
	}
	if c.Files == nil {
		c.Files = make(map[string]IndexEntry)
	}
	return &c, nil
}

// LogEntry pairs a commit with its digest during history traversal.
type LogEntry struct {
	Digest object.Digest
	Commit *Commit
}

// Log walks the parent chain from start, returning commits newest
// first. Traversal stops at the root commit, after maxEntries commits
// (when maxEntries > 0), or at a commit that fails to load — a broken
// link is logged and truncates history rather than failing the caller.
func (r *Repo) Log(start object.Digest, maxEntries int) []LogEntry {
	var entries []LogEntry
	current := start

	for current != "" {
		if maxEntries > 0 && len(entries) >= maxEntries {
			break
		}
		c, err := r.GetCommit(current)
		if err != nil {
			r.Logger.Warn("history truncated at unreadable commit",
				zap.String("digest", string(current)),
				zap.Error(err))
			break
		}
		entries = append(entries, LogEntry{Digest: current, Commit: c})
		current = c.Parent
	}

	return entries
}
