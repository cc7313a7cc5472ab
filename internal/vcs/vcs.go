package vcs

import (
	"context"
	"errors"
)

// Repo is the version control primitive the sync engine needs.
type Repo interface {
	// Root returns the repository work tree.
	Root() string

	// Diff returns the unified diff between base and the work tree, with
	// rename detection disabled.
	Diff(ctx context.Context, base string) ([]byte, error)

	// Add stages paths relative to the root.
	Add(ctx context.Context, paths ...string) error

	// Commit records the staged changes.
	Commit(ctx context.Context, message string) error

	// RevParse resolves ref to a full commit hash.
	RevParse(ctx context.Context, ref string) (string, error)

	// HasChanges reports uncommitted changes in the work tree.
	HasChanges(ctx context.Context) (bool, error)
}

// Remote is a repository that exchanges commits with a remote.
type Remote interface {
	Pull(ctx context.Context, remote, branch string) error
	Push(ctx context.Context, remote, branch string) error
}

var (
	// ErrNotInVCS is returned when the directory is not a git work tree.
	ErrNotInVCS = errors.New("not in a git repository")

	// ErrVCSNotAvailable is returned when git is not in PATH.
	ErrVCSNotAvailable = errors.New("git binary not available")
)
