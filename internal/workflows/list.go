package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/index"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Pattern keeps paths matching this doublestar glob, or lying below a
	// directory matching it. Empty keeps everything.
	Pattern string
}

// ListResult holds the matching entries.
type ListResult struct {
	// Entries are ordered by recent use.
	Entries []index.Pair

	// Tree holds the same paths for display.
	Tree *index.Tree
}

// List returns the indexed entries, optionally filtered.
//
// Returns ErrInvalidPattern if the pattern is malformed.
func List(ctx context.Context, env *Env, opts ListOptions) (*ListResult, error) {
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("%q: %w", opts.Pattern, kerrors.ErrInvalidPattern)
	}

	list, err := env.Index.Get(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Pattern != "" {
		kept := list[:0]
		for _, p := range list {
			if matchesPattern(opts.Pattern, p.Path) {
				kept = append(kept, p)
			}
		}
		list = kept
	}

	return &ListResult{Entries: list, Tree: index.TreeOf(list)}, nil
}

func matchesPattern(pattern, entryPath string) bool {
	if ok, _ := doublestar.Match(pattern, entryPath); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern+"/**", entryPath)
	return ok
}
