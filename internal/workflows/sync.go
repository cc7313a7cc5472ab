package workflows

import (
	"context"
	"os"
	"path/filepath"
	"time"

	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/syncer"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct {
	// DryRun reports the actions without performing them.
	DryRun bool

	// Report is called for every action.
	Report func(action syncer.Action, applied bool)
}

// Sync reconciles the store with its mirror once.
//
// Returns ErrMarkerNotFound if the mirror was never initialized.
// Returns ErrDirtyMirror if the mirror has uncommitted changes.
func Sync(ctx context.Context, env *Env, opts SyncOptions) (*syncer.Result, error) {
	s := env.Syncer()
	s.Report = opts.Report
	return s.Run(ctx, syncer.Options{Apply: !opts.DryRun})
}

// SyncInit creates the mirror repository and copies every entry into it.
//
// Returns ErrDestinationExists if the mirror is already a repository.
func SyncInit(ctx context.Context, env *Env) (*syncer.InitResult, error) {
	return env.Syncer().Init(ctx)
}

// DaemonOptions configures the sync daemon.
type DaemonOptions struct {
	Debounce time.Duration
	Poll     time.Duration
}

// Daemon pulls, reconciles and pushes the mirror whenever either
// repository's branches move, until ctx is cancelled. It logs to the
// configured daemon log.
func Daemon(ctx context.Context, env *Env, opts DaemonOptions) error {
	logPath := env.Settings.InHome(env.Config.Main.DaemonLog)
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return err
	}

	log := logger.NewFileLogger(logger.FileConfig{Path: logPath, Debug: env.Logger.Debug})
	defer func() { _ = log.Sync() }()

	var watch []string
	for _, gitDir := range []string{env.Slave.GitDir(), env.Master.GitDir()} {
		heads := filepath.Join(gitDir, "refs", "heads")
		if info, err := os.Stat(heads); err == nil && info.IsDir() {
			watch = append(watch, heads)
		}
	}

	d := &syncer.Daemon{
		Syncer: env.Syncer(),
		Remote: env.Slave,
		Log:    log,
		Options: syncer.DaemonOptions{
			Remote:    env.Config.Main.SyncRemote,
			Branch:    env.Config.Main.SyncBranch,
			WatchDirs: watch,
			Debounce:  opts.Debounce,
			Poll:      opts.Poll,
		},
	}

	env.Logger.Infof("Sync daemon logging to %s", logPath)
	return d.Run(ctx)
}
