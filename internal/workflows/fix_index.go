package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/index"
)

// Preference decides which side wins when an entry and the index disagree
// on a path.
type Preference int

const (
	PreferAsk Preference = iota
	PreferIndex
	PreferEntry
)

// ParsePreference reads "index", "entry" or "" (ask).
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(s) {
	case "":
		return PreferAsk, nil
	case "index":
		return PreferIndex, nil
	case "entry":
		return PreferEntry, nil
	default:
		return PreferAsk, fmt.Errorf("unknown preference %q, use index or entry", s)
	}
}

// Mismatch is an entry whose path field disagrees with the index.
type Mismatch struct {
	ID        uuid.UUID
	IndexPath string
	EntryPath string

	// Kept is the side that won.
	Kept Preference
}

// FixIndexOptions configures the fix-index workflow.
type FixIndexOptions struct {
	Prefer Preference

	// Choose resolves a mismatch when Prefer is PreferAsk.
	Choose func(Mismatch) (Preference, error)

	// RemoveOrphans decides whether index pairs without a record are
	// dropped. Nil keeps them.
	RemoveOrphans func(orphans []index.Pair) (bool, error)

	// DryRun reports problems without fixing them.
	DryRun bool
}

// FixIndexResult contains the outcome of a fix-index operation.
type FixIndexResult struct {
	// Checked is the number of identifier records read.
	Checked int

	// Added lists records that were missing from the index.
	Added []index.Pair

	// Fixed lists path disagreements and how they were settled.
	Fixed []Mismatch

	// Unresolved lists records that could not be indexed.
	Unresolved []uuid.UUID

	// Orphans lists index pairs without a record.
	Orphans        []index.Pair
	OrphansRemoved bool

	// Warnings describes skipped files.
	Warnings []string

	DryRun bool
}

// FixIndex cross-checks the records in the identifier folder against the
// index.
//
// Returns ErrNoIndex if the store has no index.
func FixIndex(ctx context.Context, env *Env, opts FixIndexOptions) (*FixIndexResult, error) {
	list, err := env.Index.Get(ctx)
	if err != nil {
		return nil, err
	}
	forward := index.ForwardMap(list)

	ids, warnings, err := scanRecords(env)
	if err != nil {
		return nil, err
	}

	result := &FixIndexResult{Warnings: warnings, DryRun: opts.DryRun}
	for _, w := range warnings {
		env.Logger.Warnf("%s", w)
	}

	for _, id := range ids {
		result.Checked++
		if err := checkRecord(ctx, env, opts, id, forward, result); err != nil {
			return result, err
		}
	}

	for _, p := range list {
		if _, err := os.Stat(env.Layout.RecordFile(p.ID)); os.IsNotExist(err) {
			result.Orphans = append(result.Orphans, p)
		}
	}

	if len(result.Orphans) == 0 || opts.DryRun || opts.RemoveOrphans == nil {
		return result, nil
	}

	remove, err := opts.RemoveOrphans(result.Orphans)
	if err != nil || !remove {
		return result, err
	}
	for _, p := range result.Orphans {
		if err := env.Index.Remove(ctx, p.ID); err != nil {
			return result, err
		}
	}
	result.OrphansRemoved = true

	return result, nil
}

func checkRecord(ctx context.Context, env *Env, opts FixIndexOptions, id uuid.UUID, forward map[uuid.UUID]string, result *FixIndexResult) error {
	e, err := env.Entries.Load(ctx, id)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("cannot read %s: %v", id, err))
		env.Logger.Warnf("Cannot read %s: %v", id, err)
		return nil
	}
	entryPath := e.PathOrEmpty()

	indexPath, indexed := forward[id]
	switch {
	case indexed && indexPath == entryPath:
		env.Logger.Debugf("%s is correct", indexPath)
		return nil

	case indexed:
		m := Mismatch{ID: id, IndexPath: indexPath, EntryPath: entryPath, Kept: opts.Prefer}
		if entryPath == "" {
			m.Kept = PreferIndex
		} else if m.Kept == PreferAsk {
			if opts.Choose == nil {
				return nil
			}
			if m.Kept, err = opts.Choose(m); err != nil {
				return err
			}
		}

		if !opts.DryRun {
			if m.Kept == PreferIndex {
				e.SetPath(indexPath)
				err = env.Entries.Write(ctx, e)
			} else {
				err = env.Index.Move(ctx, id, entryPath)
			}
			if errors.Is(err, kerrors.ErrPathCollision) {
				env.Logger.Warnf("Cannot move %s to %s: %v", indexPath, entryPath, err)
				result.Unresolved = append(result.Unresolved, id)
				return nil
			}
			if err != nil {
				return err
			}
		}
		result.Fixed = append(result.Fixed, m)
		return nil

	case entryPath == "":
		env.Logger.Warnf("%s is not indexed and has no path", id)
		result.Unresolved = append(result.Unresolved, id)
		return nil

	default:
		if !opts.DryRun {
			err := env.Index.Insert(ctx, id, entryPath)
			if errors.Is(err, kerrors.ErrPathCollision) {
				env.Logger.Warnf("Cannot index %s at %s: %v", id, entryPath, err)
				result.Unresolved = append(result.Unresolved, id)
				return nil
			}
			if err != nil {
				return err
			}
		}
		result.Added = append(result.Added, index.Pair{ID: id, Path: entryPath})
		return nil
	}
}

// scanRecords lists the identifiers of the records in the identifier
// folder, skipping the index and anything unrecognized.
func scanRecords(env *Env) ([]uuid.UUID, []string, error) {
	dir := filepath.Join(env.Layout.Root, env.Layout.UUIDFolder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var ids []uuid.UUID
	var warnings []string

	for _, d := range entries {
		name := d.Name()
		if d.IsDir() {
			warnings = append(warnings, fmt.Sprintf("unexpected directory %s", name))
			continue
		}

		base, ok := strings.CutSuffix(name, "."+env.Layout.Extension)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized file %s", name))
			continue
		}
		if base == env.Layout.IndexEntry || strings.HasPrefix(base, ".") {
			continue
		}

		id, err := uuid.Parse(base)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid identifier %s", name))
			continue
		}
		ids = append(ids, id)
	}

	return ids, warnings, nil
}
