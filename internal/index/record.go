package index

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// Parse decodes the index record, one "<uuid> <path>" pair per line.
// The path is everything after the first space.
func Parse(raw []byte) ([]Pair, error) {
	var list []Pair

	for n, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		idText, entryPath, found := strings.Cut(line, " ")
		if !found || entryPath == "" {
			return nil, fmt.Errorf("index line %d has no path: %w", n+1, kerrors.ErrInvalidIndex)
		}

		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, fmt.Errorf("index line %d: %q: %w", n+1, idText, kerrors.ErrInvalidIdentifier)
		}

		list = append(list, Pair{ID: id, Path: entryPath})
	}

	return list, nil
}

// Format encodes list as the index record.
func Format(list []Pair) []byte {
	var b strings.Builder
	for _, p := range list {
		b.WriteString(p.ID.String())
		b.WriteByte(' ')
		b.WriteString(p.Path)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
