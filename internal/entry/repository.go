package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass"
)

// Indexer records a new entry in the index.
type Indexer interface {
	Resolve(ctx context.Context, entryPath string) (uuid.UUID, error)
	Insert(ctx context.Context, id uuid.UUID, entryPath string) error
}

// Repository loads and stores entries through the secret store.
type Repository struct {
	Store  pass.Store
	Layout pass.Layout
	Codec  Codec
	Logger logger.Logger
}

// Load reads the entry stored under id. An entry declaring another
// identifier is corrected in memory; the fix is persisted by the next Write.
func (r *Repository) Load(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := r.LoadName(ctx, r.Layout.RecordName(id))
	if err != nil {
		return nil, err
	}

	if e.ID != id {
		r.Logger.Warnf("Entry %s declares identifier %s, using %s", r.Layout.RecordName(id), e.ID, id)
		e.ID = id
	}

	return e, nil
}

// LoadName reads and parses any record by store name.
func (r *Repository) LoadName(ctx context.Context, name string) (*Entry, error) {
	raw, err := r.Store.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	e, err := r.Codec.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return e, nil
}

// Write stores the entry under its identifier. The index is not touched.
func (r *Repository) Write(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("cannot write entry %q: %w", e.PathOrEmpty(), kerrors.ErrInvalidIdentifier)
	}

	r.Logger.Debugf("Writing record %s", r.Layout.RecordName(e.ID))
	if err := r.Store.Write(ctx, r.Layout.RecordName(e.ID), r.Codec.Serialize(e)); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", e.ID, err)
	}
	return nil
}

// Create stores a new entry and adds it to the index. An entry without an
// identifier gets a fresh one. Nothing is written when the path is taken.
//
// Returns ErrPathCollision if the path is already indexed.
func (r *Repository) Create(ctx context.Context, e *Entry, idx Indexer) error {
	if e.Path == nil || *e.Path == "" {
		return kerrors.ErrEntryWithoutPath
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	_, err := idx.Resolve(ctx, *e.Path)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", *e.Path, kerrors.ErrPathCollision)
	case !errors.Is(err, kerrors.ErrNotIndexed):
		return err
	}

	if err := r.Write(ctx, e); err != nil {
		return err
	}
	return idx.Insert(ctx, e.ID, *e.Path)
}
