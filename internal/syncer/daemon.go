package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PolarWolf314/rpass/internal/vcs"
)

// DaemonOptions configures the sync daemon.
type DaemonOptions struct {
	// Remote and Branch are pulled from and pushed to on every cycle.
	Remote string
	Branch string

	// WatchDirs trigger a cycle when a file in them changes.
	WatchDirs []string

	// Debounce is how long changes must settle before a cycle starts.
	Debounce time.Duration

	// Poll triggers a cycle periodically to pick up remote changes.
	// Zero disables polling.
	Poll time.Duration
}

// Daemon keeps the mirror and its remote in sync until stopped.
type Daemon struct {
	Syncer  *Syncer
	Remote  vcs.Remote
	Log     *zap.Logger
	Options DaemonOptions
}

// Cycle pulls the mirror, reconciles and pushes.
func (d *Daemon) Cycle(ctx context.Context) (*Result, error) {
	if err := d.Remote.Pull(ctx, d.Options.Remote, d.Options.Branch); err != nil {
		return nil, err
	}

	result, err := d.Syncer.Run(ctx, Options{Apply: true})
	if err != nil {
		return result, err
	}

	if err := d.Remote.Push(ctx, d.Options.Remote, d.Options.Branch); err != nil {
		return result, err
	}
	return result, nil
}

// Run performs a cycle immediately and then whenever a watched directory
// changes or the poll interval elapses. Cycles never overlap. A failed
// cycle is logged and the daemon keeps running. Run returns when ctx is
// cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range d.Options.WatchDirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		d.Log.Info("watching", zap.String("dir", dir))
	}

	triggers := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.watch(ctx, watcher, triggers)
	})

	g.Go(func() error {
		d.cycle(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-triggers:
				d.cycle(ctx)
			}
		}
	})

	return g.Wait()
}

func (d *Daemon) watch(ctx context.Context, watcher *fsnotify.Watcher, triggers chan<- struct{}) error {
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	var poll <-chan time.Time
	if d.Options.Poll > 0 {
		ticker := time.NewTicker(d.Options.Poll)
		defer ticker.Stop()
		poll = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasSuffix(event.Name, ".lock") {
				continue
			}
			d.Log.Debug("change", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			debounce.Reset(d.Options.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.Log.Warn("watcher error", zap.Error(err))

		case <-debounce.C:
			notify(triggers)

		case <-poll:
			notify(triggers)
		}
	}
}

func (d *Daemon) cycle(ctx context.Context) {
	start := time.Now()
	result, err := d.Cycle(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		d.Log.Error("sync cycle failed", zap.Error(err))
		return
	}

	d.Log.Info("sync cycle",
		zap.Int("actions", len(result.Actions)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Bool("committed", result.Committed),
		zap.Duration("took", time.Since(start)),
	)
}

// notify queues one trigger, dropping it if one is already pending.
func notify(triggers chan<- struct{}) {
	select {
	case triggers <- struct{}{}:
	default:
	}
}
