package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestLog(t *testing.T, horizon time.Duration, now time.Time) *Log {
	t.Helper()
	l := New(filepath.Join(t.TempDir(), "cache", "rpass_history"), horizon)
	l.now = func() time.Time { return now }
	return l
}

func TestTouch_CreatesFile(t *testing.T) {
	l := newTestLog(t, 24*time.Hour, time.Now())

	if err := l.Touch(uuid.New()); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	if _, err := os.Stat(l.Path); err != nil {
		t.Fatalf("History file was not created: %v", err)
	}
}

func TestFrequencies_CountsTouches(t *testing.T) {
	l := newTestLog(t, 24*time.Hour, time.Now())
	a, b := uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{a, b, a, a} {
		if err := l.Touch(id); err != nil {
			t.Fatalf("Touch failed: %v", err)
		}
	}

	counts, err := l.Frequencies()
	if err != nil {
		t.Fatalf("Frequencies failed: %v", err)
	}
	if counts[a] != 3 || counts[b] != 1 {
		t.Errorf("Expected 3 and 1, got %d and %d", counts[a], counts[b])
	}
}

func TestRecords_DropsExpired(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLog(t, 48*time.Hour, start)
	old, fresh := uuid.New(), uuid.New()

	if err := l.Touch(old); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	l.now = func() time.Time { return start.Add(72 * time.Hour) }
	if err := l.Touch(fresh); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 1 || records[0].UUID != fresh.String() {
		t.Fatalf("Expected only the fresh record, got %+v", records)
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(ParseRecords(data)) != 1 {
		t.Errorf("Expired record should have been compacted out of the file")
	}
}

func TestRecords_MissingFile(t *testing.T) {
	l := newTestLog(t, time.Hour, time.Now())

	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestParseRecords_SkipsMalformed(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.000000Z","uuid":"550e8400-e29b-41d4-a716-446655440000"}
not json
{"ts":"2024-01-15T10:31:00.000000Z","uuid":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}

{"ts":`)

	records := ParseRecords(data)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1].UUID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("Unexpected second record: %+v", records[1])
	}
}

func TestFrequencies_IgnoresBadIdentifiers(t *testing.T) {
	l := newTestLog(t, 0, time.Now())
	content := `{"ts":"2024-01-15T10:30:00.000000Z","uuid":"nope"}` + "\n"
	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.Path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	counts, err := l.Frequencies()
	if err != nil {
		t.Fatalf("Frequencies failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("Expected no counts, got %v", counts)
	}
}
