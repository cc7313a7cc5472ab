package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/index"
	"github.com/PolarWolf314/rpass/internal/utils"
)

// Rename is one path change of a bulk rename.
type Rename struct {
	ID   uuid.UUID
	From string
	To   string
}

// shadowName is the temporary record the index is edited in. It lives at
// the store root under a dot-name, where neither sync nor init looks.
func shadowName(env *Env) string {
	return "." + env.Layout.IndexEntry + "_rename"
}

// PlanBulkRename opens a copy of the index in the store's editor and
// returns the paths that were changed. Lines that were removed or given an
// unknown identifier are ignored.
//
// Returns ErrPathCollision if two entries would end up on the same path or
// a destination is used by another entry.
func PlanBulkRename(ctx context.Context, env *Env) ([]Rename, error) {
	list, err := env.Index.Get(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b index.Pair) int { return strings.Compare(a.Path, b.Path) })

	shadow := shadowName(env)
	if err := env.Store.Write(ctx, shadow, index.Format(list)); err != nil {
		return nil, err
	}
	defer func() {
		if err := env.Store.Remove(ctx, shadow); err != nil {
			env.Logger.Warnf("Failed to remove %s: %v", shadow, err)
		}
	}()

	if err := env.Store.Edit(ctx, shadow); err != nil {
		return nil, err
	}

	raw, err := env.Store.Read(ctx, shadow)
	if err != nil {
		return nil, err
	}
	edited, err := index.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("edited index: %w", err)
	}

	return diffPaths(list, edited)
}

func diffPaths(list, edited []index.Pair) ([]Rename, error) {
	forward := index.ForwardMap(list)
	reverse := index.ReverseMap(list)

	var renames []Rename
	targets := make(map[string]uuid.UUID)

	for _, p := range edited {
		from, ok := forward[p.ID]
		to := utils.CleanEntryPath(p.Path)
		if !ok || to == "" || to == from {
			continue
		}

		if other, taken := targets[to]; taken && other != p.ID {
			return nil, fmt.Errorf("%s: %w", to, kerrors.ErrPathCollision)
		}
		if owner, used := reverse[to]; used && owner != p.ID {
			return nil, fmt.Errorf("%s: %w", to, kerrors.ErrPathCollision)
		}

		targets[to] = p.ID
		renames = append(renames, Rename{ID: p.ID, From: from, To: to})
	}

	return renames, nil
}

// BulkRename applies renames in order. It stops at the first failure;
// earlier renames stay applied.
func BulkRename(ctx context.Context, env *Env, renames []Rename) error {
	for _, r := range renames {
		e, err := env.Entries.Load(ctx, r.ID)
		if err != nil {
			return err
		}
		if err := moveEntry(ctx, env, e, r.From, r.To); err != nil {
			return err
		}
	}
	return nil
}
