package workflows

import (
	"context"

	"github.com/google/uuid"
)

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Selection Selection
}

// DeleteResult identifies the removed entry.
type DeleteResult struct {
	ID   uuid.UUID
	Path string
}

// Delete removes an entry from the index and deletes its record. The
// record does not have to be readable.
func Delete(ctx context.Context, env *Env, opts DeleteOptions) (*DeleteResult, error) {
	id, entryPath, err := env.Resolve(ctx, opts.Selection)
	if err != nil {
		return nil, err
	}

	if err := env.Index.Remove(ctx, id); err != nil {
		return nil, err
	}

	env.Logger.Infof("Removed %s (%s)", entryPath, id)
	return &DeleteResult{ID: id, Path: entryPath}, nil
}
