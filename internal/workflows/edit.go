package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rpass/internal/entry"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	Selection Selection
}

// EditResult contains the outcome of an edit.
type EditResult struct {
	Entry *entry.Entry

	// From is the path before the edit.
	From string

	// Moved is true if the edit changed the path and the index followed.
	Moved bool

	// PathRestored is true if the edit removed the path line and it was
	// written back.
	PathRestored bool
}

// Edit opens the entry in the store's editor. A changed path line moves the
// entry in the index; a deleted path line is restored.
func Edit(ctx context.Context, env *Env, opts EditOptions) (*EditResult, error) {
	id, from, err := env.Resolve(ctx, opts.Selection)
	if err != nil {
		return nil, err
	}

	if err := env.Store.Edit(ctx, env.Layout.RecordName(id)); err != nil {
		return nil, err
	}

	e, err := env.Entries.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &EditResult{Entry: e, From: from}

	switch to := e.PathOrEmpty(); {
	case to == "":
		env.Logger.Warnf("The path line of %s was removed, restoring it", from)
		e.SetPath(from)
		if err := env.Entries.Write(ctx, e); err != nil {
			return nil, err
		}
		result.PathRestored = true

	case to != from:
		if err := env.Index.Move(ctx, id, to); err != nil {
			e.SetPath(from)
			if werr := env.Entries.Write(ctx, e); werr != nil {
				env.Logger.Errorf("Failed to restore the path of %s: %v", id, werr)
			}
			return nil, fmt.Errorf("failed to move %s to %s: %w", from, to, err)
		}
		env.Logger.Infof("Moved %s to %s", from, to)
		result.Moved = true
	}

	return result, nil
}
