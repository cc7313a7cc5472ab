package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/rpass/internal/configs"
	"github.com/PolarWolf314/rpass/internal/entry"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass/passtest"
)

// newTestEnv returns an Env over a plaintext store with an empty index.
func newTestEnv(t *testing.T) (*Env, *passtest.Dir) {
	t.Helper()
	root := t.TempDir()

	settings := &configs.Settings{
		HomeDir:    filepath.Join(root, "home"),
		ConfigPath: filepath.Join(root, "config.toml"),
		StoreRoot:  filepath.Join(root, "store"),
	}
	config := configs.DefaultConfig()
	store := &passtest.Dir{Layout: NewLayout(settings.StoreRoot, config.Main)}

	env := NewEnvWithStore(config, settings, store, logger.Logger{})
	require.NoError(t, env.Index.Write(context.Background(), nil))
	return env, store
}

func mustInsert(t *testing.T, env *Env, entryPath string) *entry.Entry {
	t.Helper()
	result, err := Insert(context.Background(), env, InsertOptions{Path: entryPath, Password: "pw"})
	require.NoError(t, err)
	return result.Entry
}

func TestNewLayoutFollowsConfig(t *testing.T) {
	main := configs.DefaultConfig().Main
	main.UUIDFolder = "ids"

	layout := NewLayout("/store", main)
	assert.Equal(t, "ids/index", layout.IndexName())
	assert.Equal(t, filepath.Join("/store", ".sync"), layout.SlaveRoot())
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)
	e := mustInsert(t, env, "web/mail")

	byPath, err := env.Select(ctx, Selection{Path: "/web/mail"})
	require.NoError(t, err)
	assert.Equal(t, e.ID, byPath.ID)

	byID, err := env.Select(ctx, Selection{ID: e.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "web/mail", byID.PathOrEmpty())
}

func TestSelectErrors(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	_, err := env.Select(ctx, Selection{})
	assert.ErrorIs(t, err, kerrors.ErrNoEntrySelected)

	_, err = env.Select(ctx, Selection{ID: "nope"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidIdentifier)

	_, err = env.Select(ctx, Selection{ID: uuid.NewString()})
	assert.ErrorIs(t, err, kerrors.ErrUnknownIdentifier)

	_, err = env.Select(ctx, Selection{Path: "missing"})
	assert.ErrorIs(t, err, kerrors.ErrNotIndexed)
}
