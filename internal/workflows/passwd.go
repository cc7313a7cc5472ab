package workflows

import (
	"context"

	"github.com/PolarWolf314/rpass/internal/entry"
)

// PasswdOptions configures the passwd workflow.
type PasswdOptions struct {
	Selection Selection

	// Password is the new password unless Generate is set.
	Password string

	// Generate replaces Password with a random one of this length.
	Generate int
}

// PasswdResult contains the outcome of a password change.
type PasswdResult struct {
	Entry     *entry.Entry
	Generated bool
}

// Passwd replaces the password of an entry and keeps every other field.
//
// Returns ErrEmptyPassword if neither a password nor a length is given.
func Passwd(ctx context.Context, env *Env, opts PasswdOptions) (*PasswdResult, error) {
	password, generated, err := newPassword(opts.Password, opts.Generate)
	if err != nil {
		return nil, err
	}

	e, err := env.Select(ctx, opts.Selection)
	if err != nil {
		return nil, err
	}

	e.Password = password
	if err := env.Entries.Write(ctx, e); err != nil {
		return nil, err
	}

	env.Logger.Infof("Changed password of %s", e)
	return &PasswdResult{Entry: e, Generated: generated}, nil
}
