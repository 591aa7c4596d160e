package repo

import "errors"

// Validation errors abort the operation immediately and surface to the
// caller. Per-item errors during multi-file operations (a missing
// object during diff or restore) are logged and the item is skipped.
var (
	ErrNotInitialized        = errors.New("repository not initialized")
	ErrAlreadyInitialized    = errors.New("repository already initialized")
	ErrPathOutsideRepository = errors.New("path is outside repository")
	ErrFileNotFound          = errors.New("file not found")
	ErrEmptyStage            = errors.New("no files staged for commit")
	ErrEmptyMessage          = errors.New("commit message cannot be empty")
	ErrCommitNotFound        = errors.New("commit not found")
	ErrMalformedCommit       = errors.New("malformed commit object")
	ErrInvalidCommitTarget   = errors.New("no commit to restore from")
)
