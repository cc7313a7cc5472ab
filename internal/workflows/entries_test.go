package workflows

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

func TestInsertCreatesIndexedEntry(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	result, err := Insert(ctx, env, InsertOptions{
		Path:     "web/mail",
		Username: "me",
		URL:      "https://mail.example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.False(t, result.Generated)

	id, err := env.Index.Resolve(ctx, "web/mail")
	require.NoError(t, err)
	assert.Equal(t, result.Entry.ID, id)

	e, err := env.Entries.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", e.Password)
	assert.Equal(t, "me", *e.Username)
	assert.Equal(t, "https://mail.example.com", *e.URL)
}

func TestInsertGeneratesPassword(t *testing.T) {
	env, _ := newTestEnv(t)

	result, err := Insert(context.Background(), env, InsertOptions{Path: "gen", Generate: 24})
	require.NoError(t, err)
	assert.True(t, result.Generated)
	assert.Len(t, result.Entry.Password, 24)
}

func TestInsertRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	mustInsert(t, env, "taken")

	_, err := Insert(ctx, env, InsertOptions{Path: " / ", Password: "pw"})
	assert.ErrorIs(t, err, kerrors.ErrEntryWithoutPath)

	_, err = Insert(ctx, env, InsertOptions{Path: "new"})
	assert.ErrorIs(t, err, kerrors.ErrEmptyPassword)

	_, err = Insert(ctx, env, InsertOptions{Path: "taken", Password: "pw"})
	assert.ErrorIs(t, err, kerrors.ErrPathCollision)

	records, err := os.ReadDir(filepath.Join(store.Layout.Root, "uuids"))
	require.NoError(t, err)
	assert.Len(t, records, 2, "index and the first entry only")
}

func TestGetTouchesHistory(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	mustInsert(t, env, "a")
	b := mustInsert(t, env, "b")

	for range 3 {
		_, err := Get(ctx, env, GetOptions{Selection: Selection{Path: "b"}})
		require.NoError(t, err)
	}

	counts, err := env.History.Frequencies()
	require.NoError(t, err)
	assert.Equal(t, 4, counts[b.ID], "insert and three reads")

	paths, err := env.Paths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, paths)
}

func TestPasswdKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	_, err := Insert(ctx, env, InsertOptions{Path: "site", Username: "me", Password: "old"})
	require.NoError(t, err)

	result, err := Passwd(ctx, env, PasswdOptions{Selection: Selection{Path: "site"}, Password: "new"})
	require.NoError(t, err)

	e, err := env.Entries.Load(ctx, result.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", e.Password)
	assert.Equal(t, "me", *e.Username)
	assert.Equal(t, "site", e.PathOrEmpty())

	_, err = Passwd(ctx, env, PasswdOptions{Selection: Selection{Path: "site"}})
	assert.ErrorIs(t, err, kerrors.ErrEmptyPassword)
}

func TestMoveUpdatesIndexAndRecord(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	e := mustInsert(t, env, "old/name")

	result, err := Move(ctx, env, MoveOptions{Selection: Selection{Path: "old/name"}, Destination: "new/name"})
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.Equal(t, "old/name", result.From)

	entryPath, err := env.Index.Lookup(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "new/name", entryPath)

	loaded, err := env.Entries.Load(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "new/name", loaded.PathOrEmpty())
}

func TestMoveCollisionLeavesRecord(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	e := mustInsert(t, env, "a")
	mustInsert(t, env, "b")
	name := env.Layout.RecordName(e.ID)

	_, err := Move(ctx, env, MoveOptions{Selection: Selection{Path: "a"}, Destination: "b"})
	assert.ErrorIs(t, err, kerrors.ErrPathCollision)
	assert.Equal(t, 1, store.Writes(name))
}

func TestMoveToSamePath(t *testing.T) {
	env, _ := newTestEnv(t)
	mustInsert(t, env, "a")

	result, err := Move(context.Background(), env, MoveOptions{Selection: Selection{Path: "a"}, Destination: "a"})
	require.NoError(t, err)
	assert.False(t, result.Moved)
}

func TestDeleteRemovesEntry(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	e := mustInsert(t, env, "gone")

	result, err := Delete(ctx, env, DeleteOptions{Selection: Selection{ID: e.ID.String()}})
	require.NoError(t, err)
	assert.Equal(t, "gone", result.Path)

	_, err = env.Index.Resolve(ctx, "gone")
	assert.ErrorIs(t, err, kerrors.ErrNotIndexed)
	assert.NoFileExists(t, env.Layout.RecordFile(e.ID))
}

func TestEditFollowsPathChange(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	e := mustInsert(t, env, "before")

	store.EditFunc = func(_ string, content []byte) []byte {
		return bytes.Replace(content, []byte("path: before"), []byte("path: after"), 1)
	}

	result, err := Edit(ctx, env, EditOptions{Selection: Selection{Path: "before"}})
	require.NoError(t, err)
	assert.True(t, result.Moved)

	entryPath, err := env.Index.Lookup(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", entryPath)
}

func TestEditRestoresRemovedPath(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	e := mustInsert(t, env, "keep")

	store.EditFunc = func(_ string, content []byte) []byte {
		var kept []string
		for _, line := range strings.Split(string(content), "\n") {
			if !strings.HasPrefix(line, "path: ") {
				kept = append(kept, line)
			}
		}
		return []byte(strings.Join(kept, "\n"))
	}

	result, err := Edit(ctx, env, EditOptions{Selection: Selection{Path: "keep"}})
	require.NoError(t, err)
	assert.True(t, result.PathRestored)

	loaded, err := env.Entries.Load(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", loaded.PathOrEmpty())
}

func TestEditCollisionRestoresPath(t *testing.T) {
	ctx := context.Background()
	env, store := newTestEnv(t)
	e := mustInsert(t, env, "mine")
	mustInsert(t, env, "theirs")

	store.EditFunc = func(_ string, content []byte) []byte {
		return bytes.Replace(content, []byte("path: mine"), []byte("path: theirs"), 1)
	}

	_, err := Edit(ctx, env, EditOptions{Selection: Selection{Path: "mine"}})
	assert.ErrorIs(t, err, kerrors.ErrPathCollision)

	loaded, err := env.Entries.Load(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", loaded.PathOrEmpty())
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	for _, p := range []string{"web/mail", "web/shop", "bank/checking", "webcam"} {
		mustInsert(t, env, p)
	}

	all, err := List(ctx, env, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Entries, 4)
	assert.Equal(t, []string{"bank/checking", "web/mail", "web/shop", "webcam"}, all.Tree.Paths())

	web, err := List(ctx, env, ListOptions{Pattern: "web"})
	require.NoError(t, err)
	assert.Equal(t, []string{"web/mail", "web/shop"}, web.Tree.Paths())

	glob, err := List(ctx, env, ListOptions{Pattern: "**/*ch*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bank/checking"}, glob.Tree.Paths())

	_, err = List(ctx, env, ListOptions{Pattern: "web/[a"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidPattern)
}
