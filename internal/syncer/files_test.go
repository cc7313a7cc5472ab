package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestCopyRecord(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.gpg")
	dst := filepath.Join(root, "deep", "dir", "dst.gpg")
	writeFile(t, src, "one")

	require.NoError(t, copyRecord(src, dst, false))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	assert.ErrorIs(t, copyRecord(src, dst, false), kerrors.ErrDestinationExists)

	writeFile(t, src, "two")
	require.NoError(t, copyRecord(src, dst, true))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	assert.ErrorIs(t, copyRecord(src, filepath.Join(root, "absent.gpg"), true), kerrors.ErrDestinationMissing)
}

func TestRenameRecordPrunesSource(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a", "b", "name.gpg")
	dst := filepath.Join(root, "c", "name.gpg")
	writeFile(t, src, "x")

	require.NoError(t, renameRecord(src, dst, root))
	assert.FileExists(t, dst)
	assert.NoDirExists(t, filepath.Join(root, "a"))
	assert.DirExists(t, root)
}

func TestRenameRecordRefusesExistingDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.gpg")
	dst := filepath.Join(root, "dst.gpg")
	writeFile(t, src, "x")
	writeFile(t, dst, "y")

	assert.ErrorIs(t, renameRecord(src, dst, root), kerrors.ErrDestinationExists)
	assert.FileExists(t, src)
}

func TestRemoveRecord(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a", "b", "c.gpg")
	sibling := filepath.Join(root, "a", "d.gpg")
	writeFile(t, file, "x")
	writeFile(t, sibling, "y")

	found, err := removeRecord(file, root)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoDirExists(t, filepath.Join(root, "a", "b"))
	assert.DirExists(t, filepath.Join(root, "a"))

	found, err = removeRecord(file, root)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPruneEmptyDirsKeepsRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x", "y"), 0700))

	require.NoError(t, pruneEmptyDirs(filepath.Join(root, "x", "y"), root))
	assert.NoDirExists(t, filepath.Join(root, "x"))
	assert.DirExists(t, root)

	require.NoError(t, pruneEmptyDirs(root, root))
	assert.DirExists(t, root)
}

func TestPruneEmptyDirsStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	outside := filepath.Join(parent, "outside")
	require.NoError(t, os.MkdirAll(root, 0700))
	require.NoError(t, os.MkdirAll(outside, 0700))

	require.NoError(t, pruneEmptyDirs(outside, root))
	assert.DirExists(t, outside)
}

func TestEnsureLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".gitignore")
	writeFile(t, file, "*.swp")

	changed, err := ensureLine(file, ".sync")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = ensureLine(file, ".sync")
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "*.swp\n.sync\n", string(data))
}
