package syncer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rpass/internal/diff"
	"github.com/PolarWolf314/rpass/internal/entry"
	"github.com/PolarWolf314/rpass/internal/index"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass"
	"github.com/PolarWolf314/rpass/internal/vcs"
)

// CommitMessage is used for every commit the reconciler makes in the mirror.
const CommitMessage = "rpass sync"

// Mirror is the path-named repository. Besides the common operations it
// can be created from scratch.
type Mirror interface {
	vcs.Repo
	Init(ctx context.Context) error
	IsRepo() bool
	AppendConfig(text string) error
}

// Syncer reconciles the master store with its path-named mirror.
type Syncer struct {
	Layout  pass.Layout
	Index   *index.Index
	Entries *entry.Repository
	Master  vcs.Repo
	Slave   Mirror
	Logger  logger.Logger

	// Report is called for every action, planned or applied.
	Report func(action Action, applied bool)
}

// Options configures a reconciliation run.
type Options struct {
	// Apply performs the actions. When false the run only reports them.
	Apply bool
}

// Result describes a reconciliation run.
type Result struct {
	// Actions lists every action in execution order.
	Actions []Action

	// Skipped lists mirror removals of paths that were not indexed.
	Skipped []string

	// Committed is true if a commit was made in the mirror.
	Committed bool

	// Baseline is the new sync marker; nil unless applied.
	Baseline *diff.Baseline
}

// ActionKind identifies what an action changes.
type ActionKind int

const (
	CopyToSlave ActionKind = iota
	RemoveFromSlave
	RenameOnSlave
	UpdateOnSlave
	RemoveFromMaster
	CreateOnMaster
	UpdateOnMaster
	CommitSlave
)

// Action is one change made or planned by a run.
type Action struct {
	Kind ActionKind
	ID   uuid.UUID
	Path string

	// From is the previous path of a rename.
	From string
}

func (a Action) String() string {
	switch a.Kind {
	case CopyToSlave:
		return fmt.Sprintf("add %s to mirror", a.Path)
	case RemoveFromSlave:
		return fmt.Sprintf("remove %s from mirror", a.Path)
	case RenameOnSlave:
		return fmt.Sprintf("move %s to %s in mirror", a.From, a.Path)
	case UpdateOnSlave:
		return fmt.Sprintf("update %s in mirror", a.Path)
	case RemoveFromMaster:
		return fmt.Sprintf("remove %s (%s) from store", a.Path, a.ID)
	case CreateOnMaster:
		return fmt.Sprintf("add %s to store", a.Path)
	case UpdateOnMaster:
		return fmt.Sprintf("update %s (%s) in store", a.Path, a.ID)
	case CommitSlave:
		return "commit mirror"
	default:
		return "unknown action"
	}
}

// Count returns how many actions of kind the result holds.
func (r *Result) Count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
