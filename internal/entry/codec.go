package entry

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rpass/internal/configs"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// Keys are the line prefixes of recognized fields, matched ignoring case.
type Keys struct {
	User    string
	UserAlt string
	Path    string
	URL     string
	UUID    string
}

// DefaultKeys returns the prefixes used when nothing is configured.
func DefaultKeys() Keys {
	return KeysFromConfig(configs.DefaultConfig().Pass)
}

// KeysFromConfig reads the prefixes from the [pass] table.
func KeysFromConfig(p configs.Pass) Keys {
	return Keys{
		User:    p.UserKey,
		UserAlt: p.UserKeyAlt,
		Path:    p.PathKey,
		URL:     p.URLKey,
		UUID:    p.UUIDKey,
	}
}

// Codec converts between raw record text and entries.
type Codec struct {
	Keys Keys
}

// Parse decodes a record. The first line is the password. Later lines are
// recognized fields or kept verbatim in Extra; empty lines are dropped.
func (c Codec) Parse(raw []byte) (*Entry, error) {
	if len(raw) == 0 {
		return nil, kerrors.ErrEmptyEntry
	}
	if !utf8.Valid(raw) {
		return nil, kerrors.ErrInvalidUTF8
	}

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	e := &Entry{Password: strings.TrimSuffix(lines[0], "\r")}

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		if v, ok := cutKey(line, c.Keys.User); ok {
			e.Username = &v
		} else if v, ok := cutKey(line, c.Keys.UserAlt); ok {
			e.Username = &v
		} else if v, ok := cutKey(line, c.Keys.Path); ok {
			e.Path = &v
		} else if v, ok := cutKey(line, c.Keys.URL); ok {
			e.URL = &v
		} else if v, ok := cutKey(line, c.Keys.UUID); ok {
			id, err := uuid.Parse(v)
			if err != nil {
				id = uuid.Nil
			}
			e.ID = id
		} else {
			e.Extra = append(e.Extra, line)
		}
	}

	return e, nil
}

// Serialize encodes an entry with a fixed field order: password, username,
// url, path, extra lines, and the identifier last.
func (c Codec) Serialize(e *Entry) []byte {
	var b strings.Builder

	b.WriteString(e.Password + "\n")
	if e.Username != nil {
		b.WriteString(c.Keys.User + *e.Username + "\n")
	}
	if e.URL != nil {
		b.WriteString(c.Keys.URL + *e.URL + "\n")
	}
	if e.Path != nil {
		b.WriteString(c.Keys.Path + *e.Path + "\n")
	}
	for _, line := range e.Extra {
		b.WriteString(line + "\n")
	}
	b.WriteString(c.Keys.UUID + e.ID.String() + "\n")

	return []byte(b.String())
}

// DeclaredPath finds the path field among raw lines, such as the deleted
// lines of a diff.
func (c Codec) DeclaredPath(lines []string) (string, bool) {
	for _, line := range lines {
		if v, ok := cutKey(line, c.Keys.Path); ok {
			return v, true
		}
	}
	return "", false
}

func cutKey(line, key string) (string, bool) {
	if key == "" || len(line) < len(key) {
		return "", false
	}
	if !strings.EqualFold(line[:len(key)], key) {
		return "", false
	}
	return line[len(key):], true
}
