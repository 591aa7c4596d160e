package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readWorkFile(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestRestoreFromStaging(t *testing.T) {
	r := initRepoAt(t)
	staged := []byte("staged content\n")
	writeWorkFile(t, r, "f.txt", staged)
	require.NoError(t, r.Add([]string{"f.txt"}))

	// Dirty the working copy after staging.
	dirty := []byte("working tree edit\n")
	writeWorkFile(t, r, "f.txt", dirty)

	n, err := r.Restore(RestoreOptions{Staged: true, Paths: []string{"f.txt"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Working copy now equals the staged content, not the dirty edit.
	assert.Equal(t, string(staged), readWorkFile(t, r, "f.txt"))

	// The pre-restore working copy was backed up.
	backup, err := os.ReadFile(filepath.Join(r.GritsDir, "backup", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, string(dirty), string(backup))
}

func TestRestoreFromHEADByDefault(t *testing.T) {
	r := initRepoWithFile(t, "f.txt", []byte("committed\n"))
	_, err := r.CreateCommit("first")
	require.NoError(t, err)

	writeWorkFile(t, r, "f.txt", []byte("local change\n"))

	n, err := r.Restore(RestoreOptions{Paths: []string{"f.txt"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "committed\n", readWorkFile(t, r, "f.txt"))
}

func TestRestoreFromExplicitSource(t *testing.T) {
	r := initRepoWithFile(t, "f.txt", []byte("v1\n"))
	d1, err := r.CreateCommit("first")
	require.NoError(t, err)

	writeWorkFile(t, r, "f.txt", []byte("v2\n"))
	require.NoError(t, r.Add([]string{"f.txt"}))
	_, err = r.CreateCommit("second")
	require.NoError(t, err)

	n, err := r.Restore(RestoreOptions{Source: d1, Paths: []string{"f.txt"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "v1\n", readWorkFile(t, r, "f.txt"))
}

func TestRestoreResolvesAgainstWorkingDirectory(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	r, err := Init(root, nil)
	require.NoError(t, err)

	writeWorkFile(t, r, "file.txt", []byte("root committed\n"))
	writeWorkFile(t, r, "sub/file.txt", []byte("sub committed\n"))
	require.NoError(t, r.Add([]string{"file.txt", "sub/file.txt"}))
	_, err = r.CreateCommit("both")
	require.NoError(t, err)

	writeWorkFile(t, r, "file.txt", []byte("root edit\n"))
	writeWorkFile(t, r, "sub/file.txt", []byte("sub edit\n"))

	chdir(t, filepath.Join(r.RootDir, "sub"))

	n, err := r.Restore(RestoreOptions{Paths: []string{"file.txt"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Only the file in the working directory was restored.
	assert.Equal(t, "sub committed\n", readWorkFile(t, r, "sub/file.txt"))
	assert.Equal(t, "root edit\n", readWorkFile(t, r, "file.txt"))
}

func TestRestoreUntrackedPathSkipped(t *testing.T) {
	r := initRepoWithFile(t, "f.txt", []byte("tracked\n"))
	_, err := r.CreateCommit("first")
	require.NoError(t, err)

	n, err := r.Restore(RestoreOptions{Paths: []string{"f.txt", "never-committed.txt"}})
	require.NoError(t, err, "an unknown path must not fail the batch")
	assert.Equal(t, 1, n)

	_, statErr := os.Stat(filepath.Join(r.RootDir, "never-committed.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRestoreWithoutHEADOrSource(t *testing.T) {
	r := initRepoAt(t)
	_, err := r.Restore(RestoreOptions{Paths: []string{"f.txt"}})
	assert.ErrorIs(t, err, ErrInvalidCommitTarget)
}

func TestRestoreHard(t *testing.T) {
	r := initRepoAt(t)
	writeWorkFile(t, r, "a.txt", []byte("a committed\n"))
	writeWorkFile(t, r, "b.txt", []byte("b committed\n"))
	require.NoError(t, r.Add([]string{"a.txt", "b.txt"}))
	_, err := r.CreateCommit("baseline")
	require.NoError(t, err)

	// Mutate the working tree: modify a, delete b, create untracked c,
	// and stage the modified a so the index has something to clear.
	writeWorkFile(t, r, "a.txt", []byte("a modified\n"))
	require.NoError(t, r.Add([]string{"a.txt"}))
	require.NoError(t, os.Remove(filepath.Join(r.RootDir, "b.txt")))
	writeWorkFile(t, r, "c.txt", []byte("untracked\n"))

	require.NoError(t, r.RestoreHard())

	// Tracked files match HEAD exactly.
	assert.Equal(t, "a committed\n", readWorkFile(t, r, "a.txt"))
	assert.Equal(t, "b committed\n", readWorkFile(t, r, "b.txt"))

	// Untracked files survive.
	assert.Equal(t, "untracked\n", readWorkFile(t, r, "c.txt"))

	// The index was cleared.
	entries, err := r.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// A full pre-reset snapshot exists, including the untracked file and
	// the modified content of a.txt.
	snapshot := filepath.Join(r.GritsDir, "backup", "working_tree")
	aBackup, err := os.ReadFile(filepath.Join(snapshot, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a modified\n", string(aBackup))
	_, err = os.Stat(filepath.Join(snapshot, "c.txt"))
	assert.NoError(t, err)
}

func TestRestoreHardRemovesStaleNestedFiles(t *testing.T) {
	r := initRepoAt(t)
	writeWorkFile(t, r, "pkg/deep/file.txt", []byte("v1\n"))
	require.NoError(t, r.Add([]string{"pkg/deep/file.txt"}))
	_, err := r.CreateCommit("nested")
	require.NoError(t, err)

	writeWorkFile(t, r, "pkg/deep/file.txt", []byte("local\n"))
	require.NoError(t, r.RestoreHard())
	assert.Equal(t, "v1\n", readWorkFile(t, r, "pkg/deep/file.txt"))
}

func TestRestoreHardWithoutHEAD(t *testing.T) {
	r := initRepoAt(t)
	err := r.RestoreHard()
	assert.ErrorIs(t, err, ErrInvalidCommitTarget)
}
