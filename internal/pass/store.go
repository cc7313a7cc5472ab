package pass

import (
	"context"
	"time"
)

// Store is the encrypted record primitive. Records are addressed by name,
// a slash separated path relative to the store root without extension.
type Store interface {
	// Read returns the decrypted content of a record.
	// Returns errors.ErrRecordNotFound when the record does not exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write creates or replaces a record with multiline content.
	Write(ctx context.Context, name string, content []byte) error

	// Remove deletes a record.
	Remove(ctx context.Context, name string) error

	// Edit opens a record in the user's editor and waits for it to close.
	Edit(ctx context.Context, name string) error

	// ModTime returns the modification time of the encrypted record file.
	ModTime(name string) (time.Time, error)
}
