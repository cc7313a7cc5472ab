package diff

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/vcs"
)

// Kind classifies a file change.
type Kind int

const (
	Added Kind = iota
	Removed
	Modified
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// FileChange is one file of a diff.
type FileChange struct {
	Kind Kind

	// Path is relative to the repository root.
	Path string

	// Deleted and Inserted hold the changed lines without newlines.
	Deleted  []string
	Inserted []string
}

// PatchSet is the parsed diff of one repository.
type PatchSet struct {
	Changes []FileChange
}

// Of returns the changes of one kind in diff order.
func (p *PatchSet) Of(kind Kind) []FileChange {
	var out []FileChange
	for _, c := range p.Changes {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Empty reports whether the diff has no changes.
func (p *PatchSet) Empty() bool {
	return len(p.Changes) == 0
}

// Parse decodes unified diff text as produced by git diff.
func Parse(out []byte) (*PatchSet, error) {
	if !utf8.Valid(out) {
		return nil, kerrors.ErrInvalidUTF8
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidDiff, err)
	}

	set := &PatchSet{}
	for _, f := range files {
		change := FileChange{Kind: Modified, Path: f.NewName}
		switch {
		case f.IsNew:
			change.Kind = Added
		case f.IsDelete:
			change.Kind = Removed
			change.Path = f.OldName
		}
		if change.Path == "" {
			return nil, fmt.Errorf("%w: file without name", kerrors.ErrInvalidDiff)
		}

		for _, frag := range f.TextFragments {
			for _, line := range frag.Lines {
				text := strings.TrimSuffix(line.Line, "\n")
				switch line.Op {
				case gitdiff.OpDelete:
					change.Deleted = append(change.Deleted, text)
				case gitdiff.OpAdd:
					change.Inserted = append(change.Inserted, text)
				}
			}
		}

		set.Changes = append(set.Changes, change)
	}

	return set, nil
}

// Extract diffs both repositories against their baseline commits.
func Extract(ctx context.Context, master, slave vcs.Repo, base Baseline) (*PatchSet, *PatchSet, error) {
	masterOut, err := master.Diff(ctx, base.Master)
	if err != nil {
		return nil, nil, err
	}
	masterSet, err := Parse(masterOut)
	if err != nil {
		return nil, nil, fmt.Errorf("master diff: %w", err)
	}

	slaveOut, err := slave.Diff(ctx, base.Slave)
	if err != nil {
		return nil, nil, err
	}
	slaveSet, err := Parse(slaveOut)
	if err != nil {
		return nil, nil, fmt.Errorf("sync diff: %w", err)
	}

	return masterSet, slaveSet, nil
}
