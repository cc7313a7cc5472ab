package entry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entry is one decrypted secret record.
type Entry struct {
	Password string
	Username *string
	URL      *string
	Path     *string
	ID       uuid.UUID

	// Extra holds unrecognized lines in their original order.
	Extra []string
}

// New returns an entry with a fresh identifier.
func New(entryPath, password string) *Entry {
	return &Entry{
		Password: password,
		Path:     &entryPath,
		ID:       uuid.New(),
	}
}

// PathOrEmpty returns the path, or "" when the entry has none.
func (e *Entry) PathOrEmpty() string {
	if e.Path == nil {
		return ""
	}
	return *e.Path
}

// SetPath replaces the path.
func (e *Entry) SetPath(p string) {
	e.Path = &p
}

// Format renders the entry for display. The password is masked unless
// showPassword is set.
func (e *Entry) Format(showPassword bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "path:     %s\n", orDash(e.Path))
	fmt.Fprintf(&b, "uuid:     %s\n", e.ID)
	fmt.Fprintf(&b, "username: %s\n", orDash(e.Username))
	if showPassword {
		fmt.Fprintf(&b, "password: %s\n", e.Password)
	} else {
		fmt.Fprintf(&b, "password: %s\n", strings.Repeat("*", 8))
	}
	fmt.Fprintf(&b, "url:      %s\n", orDash(e.URL))
	for _, line := range e.Extra {
		fmt.Fprintf(&b, "%s\n", line)
	}

	return b.String()
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.PathOrEmpty(), e.ID)
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
