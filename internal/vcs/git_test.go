package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Git {
	t.Helper()
	if err := Available(); err != nil {
		t.Skip("git not available")
	}

	t.Setenv("GIT_AUTHOR_NAME", "rpass test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "rpass test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	g := NewGit(filepath.Join(t.TempDir(), "repo"), 30*time.Second)
	require.NoError(t, g.Init(context.Background()))
	return g
}

func writeFile(t *testing.T, g *Git, name, content string) {
	t.Helper()
	path := filepath.Join(g.Root(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestGitCommitAndRevParse(t *testing.T) {
	ctx := context.Background()
	g := newTestRepo(t)
	assert.True(t, g.IsRepo())

	writeFile(t, g, "web/mail.gpg", "secret\n")
	require.NoError(t, g.Add(ctx, "."))
	require.NoError(t, g.Commit(ctx, "first"))

	head, err := g.RevParse(ctx, "HEAD")
	require.NoError(t, err)
	assert.Len(t, head, 40)

	dirty, err := g.HasChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestGitDiffDisablesRenames(t *testing.T) {
	ctx := context.Background()
	g := newTestRepo(t)

	writeFile(t, g, "a/b.gpg", "secret\npath: a/b\n")
	require.NoError(t, g.Add(ctx, "."))
	require.NoError(t, g.Commit(ctx, "first"))
	base, err := g.RevParse(ctx, "HEAD")
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(g.Root(), "a", "b.gpg"), filepath.Join(g.Root(), "a", "c.gpg")))
	require.NoError(t, g.Add(ctx, "-A"))
	require.NoError(t, g.Commit(ctx, "rename"))

	out, err := g.Diff(ctx, base)
	require.NoError(t, err)

	diff := string(out)
	assert.Contains(t, diff, "deleted file mode")
	assert.Contains(t, diff, "new file mode")
	assert.False(t, strings.Contains(diff, "rename from"), "diff should not detect renames")
}

func TestGitDirtyWorkTree(t *testing.T) {
	ctx := context.Background()
	g := newTestRepo(t)

	writeFile(t, g, "x.gpg", "one\n")
	require.NoError(t, g.Add(ctx, "."))
	require.NoError(t, g.Commit(ctx, "first"))

	writeFile(t, g, "x.gpg", "two\n")
	dirty, err := g.HasChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestGitHasChangesOutsideRepo(t *testing.T) {
	g := NewGit(t.TempDir(), time.Second)

	_, err := g.HasChanges(context.Background())
	assert.ErrorIs(t, err, ErrNotInVCS)
}

func TestGitCommitFailureIncludesOutput(t *testing.T) {
	g := newTestRepo(t)

	err := g.Commit(context.Background(), "nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git commit -m nothing failed")
}

func TestGitAppendConfig(t *testing.T) {
	g := newTestRepo(t)

	require.NoError(t, g.AppendConfig("[diff \"gpg\"]\n\tbinary = true\n"))

	data, err := os.ReadFile(filepath.Join(g.GitDir(), "config"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[diff \"gpg\"]")
}
