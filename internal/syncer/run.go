package syncer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rpass/internal/diff"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/index"
)

// run holds the state of one reconciliation.
type run struct {
	*Syncer
	opts    Options
	result  *Result
	forward map[uuid.UUID]string
	reverse map[string]uuid.UUID

	slaveTouched bool
}

// Run diffs both repositories against the sync marker and applies the
// master changes to the mirror, then the mirror changes to the master.
// The first failure aborts the run; actions already applied stay applied.
func (s *Syncer) Run(ctx context.Context, opts Options) (*Result, error) {
	dirty, err := s.Slave.HasChanges(ctx)
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, fmt.Errorf("%s: %w", s.Slave.Root(), kerrors.ErrDirtyMirror)
	}

	base, err := diff.ReadBaseline(s.Layout.MarkerFile())
	if err != nil {
		return nil, err
	}
	s.Logger.Debugf("Sync baseline: master %s, mirror %s", base.Master, base.Slave)

	masterSet, slaveSet, err := diff.Extract(ctx, s.Master, s.Slave, base)
	if err != nil {
		return nil, err
	}
	if masterSet.Empty() && slaveSet.Empty() {
		s.Logger.Debugf("No changes since the last sync")
	}

	list, err := s.Index.Get(ctx)
	if err != nil {
		return nil, err
	}

	r := &run{
		Syncer:  s,
		opts:    opts,
		result:  &Result{},
		forward: index.ForwardMap(list),
		reverse: index.ReverseMap(list),
	}

	steps := []func(context.Context, *diff.PatchSet) error{
		r.masterAdded,
		r.masterRemoved,
		r.masterModified,
	}
	for _, step := range steps {
		if err := step(ctx, masterSet); err != nil {
			return r.result, err
		}
	}

	steps = []func(context.Context, *diff.PatchSet) error{
		r.slaveRemoved,
		r.slaveAdded,
		r.slaveModified,
	}
	for _, step := range steps {
		if err := step(ctx, slaveSet); err != nil {
			return r.result, err
		}
	}

	if r.slaveTouched {
		err := r.do(Action{Kind: CommitSlave}, func() error {
			if err := s.Slave.Add(ctx, "-A"); err != nil {
				return err
			}
			return s.Slave.Commit(ctx, CommitMessage)
		})
		if err != nil {
			return r.result, err
		}
		r.result.Committed = opts.Apply
	}

	if opts.Apply {
		next, err := s.advanceBaseline(ctx)
		if err != nil {
			return r.result, err
		}
		r.result.Baseline = &next
	}

	return r.result, nil
}

// do records an action and performs it when applying.
func (r *run) do(action Action, apply func() error) error {
	r.result.Actions = append(r.result.Actions, action)
	if r.Report != nil {
		r.Report(action, r.opts.Apply)
	}
	if !r.opts.Apply {
		r.Logger.Debugf("Planned: %s", action)
		return nil
	}

	r.Logger.Infof("%s", action)
	if err := apply(); err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return nil
}

// masterRecords yields the identifier of every entry record of kind.
func (r *run) masterRecords(set *diff.PatchSet, kind diff.Kind, fn func(uuid.UUID, diff.FileChange) error) error {
	for _, change := range set.Of(kind) {
		id, ok, err := r.Layout.RecordFromRepoPath(change.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", change.Path, kerrors.ErrInvalidIdentifier)
		}
		if !ok {
			r.Logger.Debugf("Ignoring master change to %s", change.Path)
			continue
		}
		if err := fn(id, change); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) masterAdded(ctx context.Context, set *diff.PatchSet) error {
	return r.masterRecords(set, diff.Added, func(id uuid.UUID, _ diff.FileChange) error {
		entryPath, ok := r.forward[id]
		if !ok {
			return fmt.Errorf("new record %s: %w", id, kerrors.ErrUnknownIdentifier)
		}

		r.slaveTouched = true
		return r.do(Action{Kind: CopyToSlave, ID: id, Path: entryPath}, func() error {
			return copyRecord(r.Layout.RecordFile(id), r.Layout.SlaveFile(entryPath), false)
		})
	})
}

func (r *run) masterRemoved(ctx context.Context, set *diff.PatchSet) error {
	return r.masterRecords(set, diff.Removed, func(id uuid.UUID, change diff.FileChange) error {
		entryPath, ok := r.Entries.Codec.DeclaredPath(change.Deleted)
		if !ok {
			return fmt.Errorf("removed record %s: %w", id, kerrors.ErrEntryWithoutPath)
		}

		r.slaveTouched = true
		return r.do(Action{Kind: RemoveFromSlave, ID: id, Path: entryPath}, func() error {
			found, err := removeRecord(r.Layout.SlaveFile(entryPath), r.Layout.SlaveRoot())
			if !found {
				r.Logger.Warnf("Mirror file of %s was already removed", entryPath)
			}
			return err
		})
	})
}

func (r *run) masterModified(ctx context.Context, set *diff.PatchSet) error {
	return r.masterRecords(set, diff.Modified, func(id uuid.UUID, change diff.FileChange) error {
		entryPath, ok := r.forward[id]
		if !ok {
			return fmt.Errorf("modified record %s: %w", id, kerrors.ErrUnknownIdentifier)
		}

		r.slaveTouched = true
		if oldPath, ok := r.Entries.Codec.DeclaredPath(change.Deleted); ok && oldPath != entryPath {
			err := r.do(Action{Kind: RenameOnSlave, ID: id, Path: entryPath, From: oldPath}, func() error {
				return renameRecord(r.Layout.SlaveFile(oldPath), r.Layout.SlaveFile(entryPath), r.Layout.SlaveRoot())
			})
			if err != nil {
				return err
			}
		}

		return r.do(Action{Kind: UpdateOnSlave, ID: id, Path: entryPath}, func() error {
			return copyRecord(r.Layout.RecordFile(id), r.Layout.SlaveFile(entryPath), true)
		})
	})
}

// slaveEntries yields the entry path of every mirror record of kind.
func (r *run) slaveEntries(set *diff.PatchSet, kind diff.Kind, fn func(string) error) error {
	for _, change := range set.Of(kind) {
		entryPath, ok := r.Layout.EntryFromSlavePath(change.Path)
		if !ok {
			r.Logger.Debugf("Ignoring mirror change to %s", change.Path)
			continue
		}
		if err := fn(entryPath); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) slaveRemoved(ctx context.Context, set *diff.PatchSet) error {
	return r.slaveEntries(set, diff.Removed, func(entryPath string) error {
		id, ok := r.reverse[entryPath]
		if !ok {
			r.Logger.Warnf("Mirror removed %s, which is not in the index; skipping", entryPath)
			r.result.Skipped = append(r.result.Skipped, entryPath)
			return nil
		}

		return r.do(Action{Kind: RemoveFromMaster, ID: id, Path: entryPath}, func() error {
			return r.Index.Remove(ctx, id)
		})
	})
}

func (r *run) slaveAdded(ctx context.Context, set *diff.PatchSet) error {
	return r.slaveEntries(set, diff.Added, func(entryPath string) error {
		if _, taken := r.reverse[entryPath]; taken {
			return fmt.Errorf("mirror added %s: %w", entryPath, kerrors.ErrPathCollision)
		}

		r.slaveTouched = true
		return r.do(Action{Kind: CreateOnMaster, Path: entryPath}, func() error {
			e, err := r.Entries.LoadName(ctx, r.Layout.SlaveName(entryPath))
			if err != nil {
				return err
			}
			e.SetPath(entryPath)
			e.ID = uuid.New()

			if err := r.Entries.Create(ctx, e, r.Index); err != nil {
				return err
			}
			return copyRecord(r.Layout.RecordFile(e.ID), r.Layout.SlaveFile(entryPath), true)
		})
	})
}

func (r *run) slaveModified(ctx context.Context, set *diff.PatchSet) error {
	return r.slaveEntries(set, diff.Modified, func(entryPath string) error {
		id, ok := r.reverse[entryPath]
		if !ok {
			return fmt.Errorf("mirror modified %s: %w", entryPath, kerrors.ErrNotIndexed)
		}

		e, err := r.Entries.LoadName(ctx, r.Layout.SlaveName(entryPath))
		if err != nil {
			return err
		}
		if e.ID != id {
			return fmt.Errorf("mirror entry %s declares %s, index has %s: %w", entryPath, e.ID, id, kerrors.ErrIdentifierMismatch)
		}
		if e.PathOrEmpty() != entryPath {
			return fmt.Errorf("mirror entry %s declares path %q: %w", entryPath, e.PathOrEmpty(), kerrors.ErrPathMismatch)
		}

		return r.do(Action{Kind: UpdateOnMaster, ID: id, Path: entryPath}, func() error {
			return r.Entries.Write(ctx, e)
		})
	})
}

func (s *Syncer) advanceBaseline(ctx context.Context) (diff.Baseline, error) {
	master, err := s.Master.RevParse(ctx, "HEAD")
	if err != nil {
		return diff.Baseline{}, err
	}
	slave, err := s.Slave.RevParse(ctx, "HEAD")
	if err != nil {
		return diff.Baseline{}, err
	}

	next := diff.Baseline{Master: master, Slave: slave}
	if err := diff.WriteBaseline(s.Layout.MarkerFile(), next); err != nil {
		return diff.Baseline{}, err
	}
	s.Logger.Debugf("New sync baseline: master %s, mirror %s", master, slave)
	return next, nil
}
