package index

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/history"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass"
)

// Pair maps one identifier to its path.
type Pair struct {
	ID   uuid.UUID
	Path string
}

// Index is the identifier to path mapping with a read cache. The cache is
// reused while the record's modification time is unchanged and no local
// write invalidated it. An Index must not be shared between goroutines.
type Index struct {
	store   pass.Store
	layout  pass.Layout
	history *history.Log
	log     logger.Logger

	cached []Pair
	stamp  time.Time
	valid  bool
}

// New returns an Index over the record named by layout. history may be nil,
// in which case the list is ordered by path only.
func New(store pass.Store, layout pass.Layout, hist *history.Log, log logger.Logger) *Index {
	return &Index{store: store, layout: layout, history: hist, log: log}
}

// Get returns the list ordered by recent use, then by path ignoring case.
// The returned slice belongs to the caller.
func (x *Index) Get(ctx context.Context) ([]Pair, error) {
	stamp, err := x.store.ModTime(x.layout.IndexName())
	if errors.Is(err, kerrors.ErrRecordNotFound) {
		x.Invalidate()
		return nil, kerrors.ErrNoIndex
	}
	if err != nil {
		return nil, err
	}

	if x.valid && stamp.Equal(x.stamp) {
		x.log.Debugf("Using cached index (%d entries)", len(x.cached))
		return slices.Clone(x.cached), nil
	}

	raw, err := x.store.Read(ctx, x.layout.IndexName())
	if errors.Is(err, kerrors.ErrRecordNotFound) {
		return nil, kerrors.ErrNoIndex
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	list, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	var counts map[uuid.UUID]int
	if x.history != nil {
		counts, err = x.history.Frequencies()
		if err != nil {
			x.log.Warnf("Ignoring usage history: %v", err)
		}
	}
	SortByUsage(list, counts)

	x.log.Debugf("Read index with %d entries", len(list))
	x.cached = list
	x.stamp = stamp
	x.valid = true
	return slices.Clone(list), nil
}

// Invalidate drops the cached list so the next Get reads the record.
func (x *Index) Invalidate() {
	x.cached = nil
	x.valid = false
}

// Write replaces the index record with list.
func (x *Index) Write(ctx context.Context, list []Pair) error {
	defer x.Invalidate()

	if err := x.store.Write(ctx, x.layout.IndexName(), Format(list)); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// Insert adds a pair. The identifier must be new and the path unused.
func (x *Index) Insert(ctx context.Context, id uuid.UUID, entryPath string) error {
	list, err := x.Get(ctx)
	if err != nil {
		return err
	}

	for _, p := range list {
		if p.ID == id {
			return fmt.Errorf("%s: %w", id, kerrors.ErrDuplicateIdentifier)
		}
		if p.Path == entryPath {
			return fmt.Errorf("%s: %w", entryPath, kerrors.ErrPathCollision)
		}
	}

	if err := x.Write(ctx, append(list, Pair{ID: id, Path: entryPath})); err != nil {
		return err
	}
	x.Touch(id)
	return nil
}

// Remove drops the pair of id and deletes its record.
func (x *Index) Remove(ctx context.Context, id uuid.UUID) error {
	list, err := x.Get(ctx)
	if err != nil {
		return err
	}

	n := len(list)
	list = slices.DeleteFunc(list, func(p Pair) bool { return p.ID == id })
	if len(list) == n {
		return fmt.Errorf("%s: %w", id, kerrors.ErrUnknownIdentifier)
	}

	if err := x.Write(ctx, list); err != nil {
		return err
	}

	err = x.store.Remove(ctx, x.layout.RecordName(id))
	if errors.Is(err, kerrors.ErrRecordNotFound) {
		x.log.Warnf("Record of %s was already gone", id)
		return nil
	}
	return err
}

// Move changes the path of id. The pair moves to the end of the list.
func (x *Index) Move(ctx context.Context, id uuid.UUID, newPath string) error {
	list, err := x.Get(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
		} else if p.Path == newPath {
			return fmt.Errorf("%s: %w", newPath, kerrors.ErrPathCollision)
		}
	}
	if !found {
		return fmt.Errorf("%s: %w", id, kerrors.ErrUnknownIdentifier)
	}

	list = slices.DeleteFunc(list, func(p Pair) bool { return p.ID == id })
	return x.Write(ctx, append(list, Pair{ID: id, Path: newPath}))
}

// Touch records a use of id in the history. Failures only warn.
func (x *Index) Touch(id uuid.UUID) {
	if x.history == nil {
		return
	}
	if err := x.history.Touch(id); err != nil {
		x.log.Warnf("Failed to update usage history: %v", err)
		return
	}
	x.Invalidate()
}

// Lookup returns the path of id.
func (x *Index) Lookup(ctx context.Context, id uuid.UUID) (string, error) {
	list, err := x.Get(ctx)
	if err != nil {
		return "", err
	}
	p, ok := ForwardMap(list)[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, kerrors.ErrUnknownIdentifier)
	}
	return p, nil
}

// Resolve returns the identifier of entryPath.
func (x *Index) Resolve(ctx context.Context, entryPath string) (uuid.UUID, error) {
	list, err := x.Get(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	id, ok := ReverseMap(list)[entryPath]
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", entryPath, kerrors.ErrNotIndexed)
	}
	return id, nil
}

// ForwardMap maps identifiers to paths.
func ForwardMap(list []Pair) map[uuid.UUID]string {
	m := make(map[uuid.UUID]string, len(list))
	for _, p := range list {
		m[p.ID] = p.Path
	}
	return m
}

// ReverseMap maps paths to identifiers.
func ReverseMap(list []Pair) map[string]uuid.UUID {
	m := make(map[string]uuid.UUID, len(list))
	for _, p := range list {
		m[p.Path] = p.ID
	}
	return m
}

// SortByUsage orders list by count descending, then by path ignoring case.
func SortByUsage(list []Pair, counts map[uuid.UUID]int) {
	slices.SortStableFunc(list, func(a, b Pair) int {
		if ca, cb := counts[a.ID], counts[b.ID]; ca != cb {
			return cb - ca
		}
		return strings.Compare(strings.ToLower(a.Path), strings.ToLower(b.Path))
	})
}
