package diff

import (
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// Baseline is the pair of commits both repositories last agreed on.
type Baseline struct {
	Master string
	Slave  string
}

// ReadBaseline reads the marker file: the master commit then the slave
// commit, one per line.
func ReadBaseline(path string) (Baseline, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Baseline{}, kerrors.ErrMarkerNotFound
	}
	if err != nil {
		return Baseline{}, fmt.Errorf("failed to read sync marker: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		return Baseline{}, fmt.Errorf("%w: expected 2 lines, found %d", kerrors.ErrInvalidMarker, len(lines))
	}

	b := Baseline{Master: lines[0], Slave: lines[1]}
	if err := b.Validate(); err != nil {
		return Baseline{}, err
	}
	return b, nil
}

// WriteBaseline replaces the marker file.
func WriteBaseline(path string, b Baseline) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.Master+"\n"+b.Slave+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write sync marker: %w", err)
	}
	return nil
}

// Validate checks that both commits are 40 hex characters.
func (b Baseline) Validate() error {
	for _, hash := range []string{b.Master, b.Slave} {
		if !isCommitHash(hash) {
			return fmt.Errorf("%w: %q is not a commit hash", kerrors.ErrInvalidMarker, hash)
		}
	}
	return nil
}

func isCommitHash(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
