package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/rpass/internal/entry"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/utils"
)

// InsertOptions configures the insert workflow.
type InsertOptions struct {
	// Path is where the entry appears in the index.
	Path string

	// Username and URL are optional fields.
	Username string
	URL      string

	// Password is stored unless Generate is set.
	Password string

	// Generate replaces Password with a random one of this length.
	Generate int
}

// InsertResult contains the outcome of an insert operation.
type InsertResult struct {
	Entry *entry.Entry

	// Generated is true if the password was generated.
	Generated bool
}

// Insert creates a new entry with a fresh identifier and indexes it.
//
// Returns ErrEntryWithoutPath if the path is empty.
// Returns ErrEmptyPassword if neither a password nor a length is given.
// Returns ErrPathCollision if the path is already indexed.
func Insert(ctx context.Context, env *Env, opts InsertOptions) (*InsertResult, error) {
	entryPath := utils.CleanEntryPath(opts.Path)
	if entryPath == "" {
		return nil, kerrors.ErrEntryWithoutPath
	}

	if err := ensureFreePath(ctx, env, entryPath); err != nil {
		return nil, err
	}

	password, generated, err := newPassword(opts.Password, opts.Generate)
	if err != nil {
		return nil, err
	}

	e := entry.New(entryPath, password)
	if opts.Username != "" {
		e.Username = &opts.Username
	}
	if opts.URL != "" {
		e.URL = &opts.URL
	}

	if err := env.Entries.Create(ctx, e, env.Index); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", entryPath, err)
	}

	env.Logger.Infof("Created %s", e)
	return &InsertResult{Entry: e, Generated: generated}, nil
}

// ensureFreePath fails if entryPath is already indexed.
func ensureFreePath(ctx context.Context, env *Env, entryPath string) error {
	_, err := env.Index.Resolve(ctx, entryPath)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", entryPath, kerrors.ErrPathCollision)
	case errors.Is(err, kerrors.ErrNotIndexed):
		return nil
	default:
		return err
	}
}

func newPassword(password string, generate int) (string, bool, error) {
	if generate > 0 {
		pw, err := utils.GeneratePassword(generate)
		return pw, true, err
	}
	if password == "" {
		return "", false, kerrors.ErrEmptyPassword
	}
	return password, false, nil
}
