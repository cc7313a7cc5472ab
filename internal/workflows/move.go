package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rpass/internal/entry"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/utils"
)

// MoveOptions configures the move workflow.
type MoveOptions struct {
	Selection   Selection
	Destination string
}

// MoveResult contains the outcome of a move.
type MoveResult struct {
	Entry *entry.Entry

	// From is the previous path.
	From string

	// Moved is false when the destination equals the current path.
	Moved bool
}

// Move changes the path of an entry in the index and in its record.
//
// Returns ErrEntryWithoutPath if the destination is empty.
// Returns ErrPathCollision if another entry uses the destination.
func Move(ctx context.Context, env *Env, opts MoveOptions) (*MoveResult, error) {
	dst := utils.CleanEntryPath(opts.Destination)
	if dst == "" {
		return nil, kerrors.ErrEntryWithoutPath
	}

	id, from, err := env.Resolve(ctx, opts.Selection)
	if err != nil {
		return nil, err
	}

	e, err := env.Entries.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{Entry: e, From: from}
	if dst == from && e.PathOrEmpty() == dst {
		return result, nil
	}

	if err := moveEntry(ctx, env, e, from, dst); err != nil {
		return nil, err
	}

	result.Moved = true
	return result, nil
}

// moveEntry updates the index first so a collision leaves the record
// untouched.
func moveEntry(ctx context.Context, env *Env, e *entry.Entry, from, dst string) error {
	if dst != from {
		if err := env.Index.Move(ctx, e.ID, dst); err != nil {
			return fmt.Errorf("failed to move %s: %w", from, err)
		}
	}

	e.SetPath(dst)
	if err := env.Entries.Write(ctx, e); err != nil {
		return err
	}

	env.Logger.Infof("Moved %s to %s", from, dst)
	return nil
}
