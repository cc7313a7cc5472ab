// Package history keeps the usage log that orders the index.
//
// Every time an entry is created or read, its identifier is appended to a
// JSON Lines file:
//
//	{"ts":"2024-01-15T10:30:00.123456Z","uuid":"550e8400-e29b-41d4-a716-446655440000"}
//
// Records older than the configured horizon (history_days) do not count
// and are dropped the next time the file is written. Malformed lines are
// skipped, so a truncated write never makes the history unreadable.
package history
