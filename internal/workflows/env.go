package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rpass/internal/configs"
	"github.com/PolarWolf314/rpass/internal/entry"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/history"
	"github.com/PolarWolf314/rpass/internal/index"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass"
	"github.com/PolarWolf314/rpass/internal/syncer"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/vcs"
)

// Env holds the collaborators shared by every workflow.
type Env struct {
	Config   *configs.Config
	Settings *configs.Settings
	Layout   pass.Layout
	Store    pass.Store
	History  *history.Log
	Index    *index.Index
	Entries  *entry.Repository
	Master   *vcs.Git
	Slave    *vcs.Git
	Logger   logger.Logger
}

// NewLayout names the store files under root as configured.
func NewLayout(root string, main configs.Main) pass.Layout {
	return pass.Layout{
		Root:           root,
		UUIDFolder:     main.UUIDFolder,
		IndexEntry:     main.IndexEntry,
		Extension:      main.RecordExtension,
		SyncFolder:     main.SyncFolder,
		SyncCommitFile: main.SyncCommitFile,
	}
}

// NewEnv wires the workflows to the pass binary and git.
func NewEnv(config *configs.Config, settings *configs.Settings, log logger.Logger) *Env {
	layout := NewLayout(settings.StoreRoot, config.Main)
	return NewEnvWithStore(config, settings, pass.NewCommand(layout, config.Timeout()), log)
}

// NewEnvWithStore wires the workflows to store.
func NewEnvWithStore(config *configs.Config, settings *configs.Settings, store pass.Store, log logger.Logger) *Env {
	layout := NewLayout(settings.StoreRoot, config.Main)
	hist := history.New(settings.InHome(config.Main.HistoryFile), config.HistoryHorizon())

	return &Env{
		Config:   config,
		Settings: settings,
		Layout:   layout,
		Store:    store,
		History:  hist,
		Index:    index.New(store, layout, hist, log),
		Entries: &entry.Repository{
			Store:  store,
			Layout: layout,
			Codec:  entry.Codec{Keys: entry.KeysFromConfig(config.Pass)},
			Logger: log,
		},
		Master: vcs.NewGit(layout.Root, config.Timeout()),
		Slave:  vcs.NewGit(layout.SlaveRoot(), config.Timeout()),
		Logger: log,
	}
}

// Syncer returns a reconciler over the store and its mirror.
func (e *Env) Syncer() *syncer.Syncer {
	return &syncer.Syncer{
		Layout:  e.Layout,
		Index:   e.Index,
		Entries: e.Entries,
		Master:  e.Master,
		Slave:   e.Slave,
		Logger:  e.Logger,
	}
}

// Selection names one entry by path or by identifier.
type Selection struct {
	Path string
	ID   string
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return s.Path == "" && s.ID == ""
}

// Resolve returns the identifier and indexed path of the selection.
//
// Returns ErrNoEntrySelected if the selection is empty.
// Returns ErrNotIndexed or ErrUnknownIdentifier if it is not in the index.
// Returns ErrInvalidIdentifier if the identifier is malformed.
func (e *Env) Resolve(ctx context.Context, sel Selection) (uuid.UUID, string, error) {
	switch {
	case sel.ID != "":
		id, err := uuid.Parse(strings.TrimSpace(sel.ID))
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("%q: %w", sel.ID, kerrors.ErrInvalidIdentifier)
		}
		entryPath, err := e.Index.Lookup(ctx, id)
		if err != nil {
			return uuid.Nil, "", err
		}
		return id, entryPath, nil

	case sel.Path != "":
		entryPath := utils.CleanEntryPath(sel.Path)
		id, err := e.Index.Resolve(ctx, entryPath)
		if err != nil {
			return uuid.Nil, "", err
		}
		return id, entryPath, nil

	default:
		return uuid.Nil, "", kerrors.ErrNoEntrySelected
	}
}

// Select loads the selected entry.
func (e *Env) Select(ctx context.Context, sel Selection) (*entry.Entry, error) {
	id, _, err := e.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	return e.Entries.Load(ctx, id)
}

// Paths returns every indexed path, most used first.
func (e *Env) Paths(ctx context.Context) ([]string, error) {
	list, err := e.Index.Get(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(list))
	for _, p := range list {
		paths = append(paths, p.Path)
	}
	return paths, nil
}
