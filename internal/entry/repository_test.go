package entry

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/pass/passtest"
)

type recordingIndexer struct {
	inserted map[uuid.UUID]string
}

func (r *recordingIndexer) Insert(_ context.Context, id uuid.UUID, entryPath string) error {
	if r.inserted == nil {
		r.inserted = make(map[uuid.UUID]string)
	}
	r.inserted[id] = entryPath
	return nil
}

func (r *recordingIndexer) Resolve(_ context.Context, entryPath string) (uuid.UUID, error) {
	for id, p := range r.inserted {
		if p == entryPath {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%s: %w", entryPath, kerrors.ErrNotIndexed)
}

func newTestRepository(t *testing.T) (*Repository, *passtest.Dir) {
	t.Helper()
	store := passtest.New(t.TempDir())
	return &Repository{Store: store, Layout: store.Layout, Codec: Codec{Keys: DefaultKeys()}}, store
}

func TestLoadHealsIdentifier(t *testing.T) {
	repo, store := newTestRepository(t)
	id := uuid.New()
	store.Put(repo.Layout.RecordName(id), "pw\npath: a/b\nuuid: "+uuid.New().String()+"\n")

	e, err := repo.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "a/b", *e.Path)
}

func TestLoadMissingRecord(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)
}

func TestCreateRequiresPath(t *testing.T) {
	repo, _ := newTestRepository(t)
	idx := &recordingIndexer{}

	err := repo.Create(context.Background(), &Entry{Password: "pw"}, idx)
	assert.ErrorIs(t, err, kerrors.ErrEntryWithoutPath)
	assert.Empty(t, idx.inserted)
}

func TestCreateWritesAndIndexes(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	idx := &recordingIndexer{}

	e := &Entry{Password: "pw", Path: strPtr("web/mail")}
	require.NoError(t, repo.Create(ctx, e, idx))

	require.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "web/mail", idx.inserted[e.ID])

	loaded, err := repo.Load(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, loaded)
}

func TestCreateRefusesTakenPathBeforeWriting(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	taken := uuid.New()
	idx := &recordingIndexer{inserted: map[uuid.UUID]string{taken: "web/mail"}}

	e := &Entry{ID: uuid.New(), Password: "pw", Path: strPtr("web/mail")}
	err := repo.Create(ctx, e, idx)
	assert.ErrorIs(t, err, kerrors.ErrPathCollision)

	assert.NoFileExists(t, repo.Layout.RecordFile(e.ID))
	assert.Len(t, idx.inserted, 1)
}

func TestWriteRejectsNilIdentifier(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.Write(context.Background(), &Entry{Password: "pw"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidIdentifier)
}
