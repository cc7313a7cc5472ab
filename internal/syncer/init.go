package syncer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/rpass/internal/diff"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// TextconvConfig registers a git diff driver that decrypts records, so that
// diffs of the mirror show entry lines.
const TextconvConfig = "[diff \"gpg\"]\n" +
	"\tbinary = true\n" +
	"\ttextconv = gpg2 -d --quiet --yes --compress-algo=none --no-encrypt-to --batch --use-agent\n"

// InitResult describes a mirror initialization.
type InitResult struct {
	// IgnoredInMaster is true if the master .gitignore was changed.
	IgnoredInMaster bool

	// Copied is the number of entries placed in the mirror.
	Copied int

	Baseline diff.Baseline
}

// Init creates the mirror repository, fills it with every indexed entry
// and writes the first sync marker.
func (s *Syncer) Init(ctx context.Context) (*InitResult, error) {
	if s.Slave.IsRepo() {
		return nil, fmt.Errorf("mirror %s: %w", s.Slave.Root(), kerrors.ErrDestinationExists)
	}

	list, err := s.Index.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := &InitResult{}

	changed, err := ensureLine(filepath.Join(s.Layout.Root, ".gitignore"), s.Layout.SyncFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to update .gitignore: %w", err)
	}
	if changed {
		s.Logger.Infof("Ignoring %s in the store repository", s.Layout.SyncFolder)
		if err := s.Master.Add(ctx, ".gitignore"); err != nil {
			return nil, err
		}
		if err := s.Master.Commit(ctx, "added gitignore for sync"); err != nil {
			return nil, err
		}
		result.IgnoredInMaster = true
	}

	if err := s.Slave.Init(ctx); err != nil {
		return nil, err
	}
	if err := s.Slave.AppendConfig(TextconvConfig); err != nil {
		return nil, err
	}

	root := s.Slave.Root()
	files := map[string]string{
		".gitignore":     s.Layout.SyncCommitFile + "\n",
		".gitattributes": "*." + s.Layout.Extension + " diff=gpg\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0600); err != nil {
			return nil, err
		}
	}

	gpgID, err := os.ReadFile(filepath.Join(s.Layout.Root, ".gpg-id"))
	switch {
	case err == nil:
		if err := os.WriteFile(filepath.Join(root, ".gpg-id"), gpgID, 0600); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		s.Logger.Warnf("Store has no .gpg-id; mirror clients will not know the recipients")
	default:
		return nil, err
	}

	if err := s.commitAll(ctx, "initial commit"); err != nil {
		return nil, err
	}

	for _, p := range list {
		s.Logger.Debugf("Copying %s to the mirror", p.Path)
		if err := copyRecord(s.Layout.RecordFile(p.ID), s.Layout.SlaveFile(p.Path), false); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", p.Path, err)
		}
		result.Copied++
	}

	if result.Copied > 0 {
		if err := s.commitAll(ctx, "initial sync"); err != nil {
			return nil, err
		}
	}

	base, err := s.advanceBaseline(ctx)
	if err != nil {
		return nil, err
	}
	result.Baseline = base

	return result, nil
}

func (s *Syncer) commitAll(ctx context.Context, message string) error {
	if err := s.Slave.Add(ctx, "-A"); err != nil {
		return err
	}
	return s.Slave.Commit(ctx, message)
}

// ensureLine appends line to file unless a line equal to it exists.
func ensureLine(file, line string) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == line {
			return false, nil
		}
	}

	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		line = "\n" + line
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		return false, err
	}
	return true, nil
}
