package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/object"
)

// Repo is an opened grits repository. It is an explicit handle carrying
// the object store and logger; there is no process-wide repository
// state.
type Repo struct {
	RootDir  string        // working tree root
	GritsDir string        // .grits/ control directory
	Store    *object.Store // content-addressed object store
	Logger   *zap.Logger
}

func (r *Repo) headPath() string  { return filepath.Join(r.GritsDir, "HEAD") }
func (r *Repo) indexPath() string { return filepath.Join(r.GritsDir, "index") }

// backupDir is where restore snapshots pre-overwrite file contents.
func (r *Repo) backupDir() string { return filepath.Join(r.GritsDir, "backup") }

// initialized reports whether the control directory, the objects
// directory, and the HEAD file all exist. A partially created
// repository is never treated as valid.
func initialized(root string) bool {
	gritsDir := filepath.Join(root, ".grits")
	for _, p := range []string{
		gritsDir,
		filepath.Join(gritsDir, "objects"),
		filepath.Join(gritsDir, "HEAD"),
	} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// Init creates a new grits repository at path: the .grits/ control
// directory, the objects directory, an empty HEAD, an empty index, and
// a default config. Fails with ErrAlreadyInitialized if the repository
// already exists.
func Init(path string, logger *zap.Logger) (*Repo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}

	if initialized(abs) {
		return nil, fmt.Errorf("init %s: %w", abs, ErrAlreadyInitialized)
	}

	gritsDir := filepath.Join(abs, ".grits")
	if err := os.MkdirAll(filepath.Join(gritsDir, "objects"), 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir objects: %w", err)
	}
	if err := os.WriteFile(filepath.Join(gritsDir, "HEAD"), nil, 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	r := &Repo{
		RootDir:  abs,
		GritsDir: gritsDir,
		Store:    object.NewStore(gritsDir, logger),
		Logger:   logger,
	}

	if err := r.ClearIndex(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	logger.Info("initialized repository", zap.String("root", abs))
	return r, nil
}

// Find searches upward from path for an initialized repository and
// returns its root. Returns ErrNotInitialized when no valid repository
// is found up to the filesystem root.
func Find(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("find repository: abs path: %w", err)
	}

	cur := abs
	for {
		if initialized(cur) {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("find repository from %s: %w", abs, ErrNotInitialized)
		}
		cur = parent
	}
}

// Open opens the repository rooted at path. The root must hold a fully
// initialized control directory. A nil logger is replaced with a no-op
// logger.
func Open(path string, logger *zap.Logger) (*Repo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	if !initialized(abs) {
		return nil, fmt.Errorf("open %s: %w", abs, ErrNotInitialized)
	}

	gritsDir := filepath.Join(abs, ".grits")
	return &Repo{
		RootDir:  abs,
		GritsDir: gritsDir,
		Store:    object.NewStore(gritsDir, logger),
		Logger:   logger,
	}, nil
}

// Head returns the digest of the latest commit, or "" when no commits
// exist yet.
func (r *Repo) Head() (object.Digest, error) {
	data, err := os.ReadFile(r.headPath())
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	return object.Digest(strings.TrimSpace(string(data))), nil
}

// SetHead points HEAD at the given commit digest.
func (r *Repo) SetHead(d object.Digest) error {
	if err := os.WriteFile(r.headPath(), []byte(d), 0o644); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	return nil
}

// repoRelPath converts a path into a slash-normalized repo-relative
// path. Absolute paths are made relative to the repository root.
// Relative paths are resolved against the process working directory;
// if that resolution lands outside the root (the caller is not inside
// the working tree), the path is assumed to already be repo-relative.
// Paths escaping the repository root are rejected with
// ErrPathOutsideRepository.
func (r *Repo) repoRelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return r.rootRelative(p, p)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("path %q: getwd: %w", p, err)
	}
	abs := filepath.Join(cwd, p)
	if rel, err := r.rootRelative(p, abs); err == nil {
		return rel, nil
	}

	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path %q: %w", p, ErrPathOutsideRepository)
	}
	return clean, nil
}

// rootRelative makes abs relative to the repository root, rejecting
// paths that escape it. orig is the caller-supplied path, used in
// error messages.
func (r *Repo) rootRelative(orig, abs string) (string, error) {
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", orig, ErrPathOutsideRepository)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q: %w", orig, ErrPathOutsideRepository)
	}
	return rel, nil
}

// workTreePath returns the absolute working-tree location of a
// repo-relative path.
func (r *Repo) workTreePath(rel string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(rel))
}
