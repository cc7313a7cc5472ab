package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/rpass/internal/diff"
	"github.com/PolarWolf314/rpass/internal/entry"
	"github.com/PolarWolf314/rpass/internal/index"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass"
	"github.com/PolarWolf314/rpass/internal/pass/passtest"
)

// fakeRepo serves a scripted diff and counts commits instead of running git.
type fakeRepo struct {
	mu sync.Mutex

	root    string
	diff    string
	head    string
	dirty   bool
	repo    bool
	config  string
	added   []string
	commits []string

	pulls, pushes int
	pullErr       error
}

func newFakeRepo(root string, seed int) *fakeRepo {
	return &fakeRepo{root: root, head: hash(seed), repo: true}
}

func (f *fakeRepo) Root() string { return f.root }

func (f *fakeRepo) Diff(context.Context, string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []byte(f.diff), nil
}

func (f *fakeRepo) Add(_ context.Context, paths ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, paths...)
	return nil
}

func (f *fakeRepo) Commit(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits = append(f.commits, message)
	f.head = hash(len(f.commits) + 100)
	return nil
}

func (f *fakeRepo) RevParse(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.head, nil
}

func (f *fakeRepo) HasChanges(context.Context) (bool, error) {
	return f.dirty, nil
}

func (f *fakeRepo) Init(context.Context) error {
	f.repo = true
	return os.MkdirAll(f.root, 0700)
}

func (f *fakeRepo) IsRepo() bool { return f.repo }

func (f *fakeRepo) AppendConfig(text string) error {
	f.config += text
	return nil
}

func (f *fakeRepo) Pull(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls++
	return f.pullErr
}

func (f *fakeRepo) Push(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes++
	return nil
}

func (f *fakeRepo) commitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commits)
}

func (f *fakeRepo) pullCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pulls
}

func hash(n int) string {
	return fmt.Sprintf("%040x", n)
}

// Diff text builders in git's format.

func addedFile(name string, lines ...string) string {
	return fmt.Sprintf("diff --git a/%[1]s b/%[1]s\nnew file mode 100644\nindex 0000000..1111111\n--- /dev/null\n+++ b/%[1]s\n@@ -0,0 +1,%[2]d @@\n%[3]s",
		name, len(lines), prefixed("+", lines))
}

func removedFile(name string, lines ...string) string {
	return fmt.Sprintf("diff --git a/%[1]s b/%[1]s\ndeleted file mode 100644\nindex 1111111..0000000\n--- a/%[1]s\n+++ /dev/null\n@@ -1,%[2]d +0,0 @@\n%[3]s",
		name, len(lines), prefixed("-", lines))
}

func modifiedFile(name string, deleted, inserted []string) string {
	return fmt.Sprintf("diff --git a/%[1]s b/%[1]s\nindex 1111111..2222222 100644\n--- a/%[1]s\n+++ b/%[1]s\n@@ -1,%[2]d +1,%[3]d @@\n%[4]s%[5]s",
		name, len(deleted), len(inserted), prefixed("-", deleted), prefixed("+", inserted))
}

func prefixed(prefix string, lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(prefix + l + "\n")
	}
	return b.String()
}

// harness is a master store with an index, an empty mirror and a marker.
type harness struct {
	t       *testing.T
	ctx     context.Context
	store   *passtest.Dir
	layout  pass.Layout
	index   *index.Index
	entries *entry.Repository
	master  *fakeRepo
	slave   *fakeRepo
	syncer  *Syncer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	store := passtest.New(t.TempDir())
	layout := store.Layout
	require.NoError(t, os.MkdirAll(layout.SlaveRoot(), 0700))

	idx := index.New(store, layout, nil, logger.Logger{})
	require.NoError(t, idx.Write(ctx, nil))

	entries := &entry.Repository{Store: store, Layout: layout, Codec: entry.Codec{Keys: entry.DefaultKeys()}}
	master := newFakeRepo(layout.Root, 1)
	slave := newFakeRepo(layout.SlaveRoot(), 2)
	require.NoError(t, diff.WriteBaseline(layout.MarkerFile(), diff.Baseline{Master: master.head, Slave: slave.head}))

	return &harness{
		t:       t,
		ctx:     ctx,
		store:   store,
		layout:  layout,
		index:   idx,
		entries: entries,
		master:  master,
		slave:   slave,
		syncer: &Syncer{
			Layout:  layout,
			Index:   idx,
			Entries: entries,
			Master:  master,
			Slave:   slave,
		},
	}
}

// addEntry stores and indexes an entry on the master and returns its
// serialized lines.
func (h *harness) addEntry(entryPath, password string) (*entry.Entry, []string) {
	h.t.Helper()
	e := entry.New(entryPath, password)
	require.NoError(h.t, h.entries.Create(h.ctx, e, h.index))
	return e, recordLines(h.entries.Codec.Serialize(e))
}

// putMirror writes a mirror file directly.
func (h *harness) putMirror(entryPath, content string) {
	h.t.Helper()
	h.store.Put(h.layout.SlaveName(entryPath), content)
}

func (h *harness) mirrorContent(entryPath string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.layout.SlaveFile(entryPath))
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) recordPath(id uuid.UUID) string {
	rel, err := filepath.Rel(h.layout.Root, h.layout.RecordFile(id))
	require.NoError(h.t, err)
	return filepath.ToSlash(rel)
}

func (h *harness) mirrorPath(entryPath string) string {
	return entryPath + "." + h.layout.Extension
}

// recordCount returns how many files the identifier folder holds.
func (h *harness) recordCount() int {
	h.t.Helper()
	files, err := os.ReadDir(filepath.Join(h.layout.Root, h.layout.UUIDFolder))
	require.NoError(h.t, err)
	return len(files)
}

func recordLines(raw []byte) []string {
	return strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
}
