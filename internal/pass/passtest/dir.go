// Package passtest provides a plaintext Store for tests.
package passtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/pass"
)

// Dir stores records unencrypted at the files a Layout names, so tests can
// inspect and copy them like the real encrypted files.
type Dir struct {
	Layout pass.Layout

	// EditFunc replaces the content of a record when Edit is called.
	EditFunc func(name string, content []byte) []byte

	mu     sync.Mutex
	writes map[string]int
}

// New returns a Dir rooted at a fresh layout under root.
func New(root string) *Dir {
	return &Dir{Layout: NewLayout(root)}
}

// NewLayout returns the default layout under root.
func NewLayout(root string) pass.Layout {
	return pass.Layout{
		Root:           root,
		UUIDFolder:     "uuids",
		IndexEntry:     "index",
		Extension:      "gpg",
		SyncFolder:     ".sync",
		SyncCommitFile: ".sync_commit",
	}
}

func (d *Dir) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(d.Layout.File(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, kerrors.ErrRecordNotFound)
	}
	return data, err
}

func (d *Dir) Write(_ context.Context, name string, content []byte) error {
	file := d.Layout.File(name)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	if err := os.WriteFile(file, content, 0600); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writes == nil {
		d.writes = make(map[string]int)
	}
	d.writes[name]++
	return nil
}

func (d *Dir) Remove(_ context.Context, name string) error {
	err := os.Remove(d.Layout.File(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", name, kerrors.ErrRecordNotFound)
	}
	return err
}

func (d *Dir) Edit(ctx context.Context, name string) error {
	if d.EditFunc == nil {
		return nil
	}
	content, err := d.Read(ctx, name)
	if err != nil {
		return err
	}
	return d.Write(ctx, name, d.EditFunc(name, content))
}

func (d *Dir) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(d.Layout.File(name))
	if os.IsNotExist(err) {
		return time.Time{}, fmt.Errorf("%s: %w", name, kerrors.ErrRecordNotFound)
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Writes returns how many times name was written.
func (d *Dir) Writes(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes[name]
}

// Put writes a record file directly.
func (d *Dir) Put(name, content string) {
	file := d.Layout.File(name)
	_ = os.MkdirAll(filepath.Dir(file), 0700)
	_ = os.WriteFile(file, []byte(content), 0600)
}
