package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const timeFormat = "2006-01-02T15:04:05.000000Z"

// Record is one use of an entry.
type Record struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	UUID      string `json:"uuid"` // Identifier of the entry that was used.
}

// Log is the usage history file.
type Log struct {
	Path    string
	Horizon time.Duration

	now func() time.Time
}

// New returns a Log at path that forgets records older than horizon.
// A horizon of zero or less keeps every record.
func New(path string, horizon time.Duration) *Log {
	return &Log{Path: path, Horizon: horizon, now: time.Now}
}

// Touch records a use of id. Records past the horizon are dropped from the
// file in the same write.
func (l *Log) Touch(id uuid.UUID) error {
	records, err := l.Records()
	if err != nil {
		return err
	}

	records = append(records, Record{
		Timestamp: l.now().UTC().Format(timeFormat),
		UUID:      id.String(),
	})

	return l.write(records)
}

// Records returns the records inside the horizon, oldest first.
// A missing file is an empty history.
func (l *Log) Records() ([]Record, error) {
	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read usage history: %w", err)
	}

	all := ParseRecords(data)
	if l.Horizon <= 0 {
		return all, nil
	}

	cutoff := l.now().Add(-l.Horizon)
	fresh := all[:0]
	for _, r := range all {
		ts, err := time.Parse(timeFormat, r.Timestamp)
		if err != nil || ts.Before(cutoff) {
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh, nil
}

// Frequencies counts the fresh records per identifier.
func (l *Log) Frequencies() (map[uuid.UUID]int, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int)
	for _, r := range records {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			continue
		}
		counts[id]++
	}
	return counts, nil
}

func (l *Log) write(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.Path), ".history-*")
	if err != nil {
		return fmt.Errorf("failed to write usage history: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to encode usage history: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), l.Path)
}

// ParseRecords parses JSON Lines data into records.
// Malformed lines are silently skipped.
func ParseRecords(data []byte) []Record {
	if len(data) == 0 {
		return nil
	}

	var records []Record
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var r Record
			if err := json.Unmarshal(line, &r); err != nil {
				continue
			}
			records = append(records, r)
		}
	}

	return records
}
