package workflows

import (
	"context"

	"github.com/PolarWolf314/rpass/internal/entry"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Selection Selection
}

// GetResult contains the loaded entry.
type GetResult struct {
	Entry *entry.Entry
}

// Get loads an entry and records the use in the usage history, which moves
// it up in future listings.
func Get(ctx context.Context, env *Env, opts GetOptions) (*GetResult, error) {
	e, err := env.Select(ctx, opts.Selection)
	if err != nil {
		return nil, err
	}

	env.Index.Touch(e.ID)
	return &GetResult{Entry: e}, nil
}
