package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/index"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Include limits migration to store names matching this doublestar
	// glob. Empty includes every record.
	Include string

	// DryRun lists the records without changing anything.
	DryRun bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Indexed lists the migrated records. Identifiers are nil in a dry run.
	Indexed []index.Pair

	// CreatedIndex is true if the store had no index.
	CreatedIndex bool

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// InitCandidates lists the path-named records Init would migrate, by store
// name. The identifier folder, the mirror and hidden directories are
// skipped.
//
// Returns ErrStoreNotInitialized if the store directory does not exist.
// Returns ErrInvalidPattern if Include is malformed.
func InitCandidates(ctx context.Context, env *Env, opts InitOptions) ([]string, error) {
	if opts.Include != "" && !doublestar.ValidatePattern(opts.Include) {
		return nil, fmt.Errorf("%q: %w", opts.Include, kerrors.ErrInvalidPattern)
	}

	root := env.Layout.Root
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, kerrors.ErrStoreNotInitialized)
	}

	suffix := "." + env.Layout.Extension
	var names []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || rel == env.Layout.UUIDFolder || rel == env.Layout.SyncFolder) {
				return filepath.SkipDir
			}
			return nil
		}

		name, ok := strings.CutSuffix(rel, suffix)
		if !ok || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if opts.Include != "" {
			if match, _ := doublestar.Match(opts.Include, name); !match {
				return nil
			}
		}

		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return names, nil
}

// Init migrates a path-named store. Every candidate record is given an
// identifier (an existing unused one is kept), its path field is set to
// its store name, it is written to the identifier folder and indexed, and
// the original record is removed. A store without an index gets an empty
// one.
//
// Returns ErrPathCollision if a candidate's name is already indexed.
func Init(ctx context.Context, env *Env, opts InitOptions) (*InitResult, error) {
	names, err := InitCandidates(ctx, env, opts)
	if err != nil {
		return nil, err
	}

	result := &InitResult{DryRun: opts.DryRun}

	_, err = env.Index.Get(ctx)
	if errors.Is(err, kerrors.ErrNoIndex) {
		result.CreatedIndex = true
		if !opts.DryRun {
			env.Logger.Infof("Creating an empty index")
			if err := env.Index.Write(ctx, nil); err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	for _, name := range names {
		if opts.DryRun {
			result.Indexed = append(result.Indexed, index.Pair{Path: name})
			continue
		}

		id, err := migrateRecord(ctx, env, name)
		if err != nil {
			return result, fmt.Errorf("failed to index %s: %w", name, err)
		}
		result.Indexed = append(result.Indexed, index.Pair{ID: id, Path: name})
	}

	return result, nil
}

func migrateRecord(ctx context.Context, env *Env, name string) (uuid.UUID, error) {
	if err := ensureFreePath(ctx, env, name); err != nil {
		return uuid.Nil, err
	}

	e, err := env.Entries.LoadName(ctx, name)
	if err != nil {
		return uuid.Nil, err
	}

	if e.ID != uuid.Nil {
		if _, err := env.Index.Lookup(ctx, e.ID); err == nil {
			env.Logger.Warnf("%s declares identifier %s, which is taken; assigning a new one", name, e.ID)
			e.ID = uuid.Nil
		}
	}
	e.SetPath(name)

	if err := env.Entries.Create(ctx, e, env.Index); err != nil {
		return uuid.Nil, err
	}

	env.Logger.Infof("Indexed %s as %s", name, e.ID)
	if err := env.Store.Remove(ctx, name); err != nil {
		return e.ID, fmt.Errorf("indexed as %s but failed to remove the original: %w", e.ID, err)
	}
	return e.ID, nil
}
