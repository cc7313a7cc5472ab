package syncer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// copyRecord copies an encrypted file. With overwrite the destination
// must exist, without it the destination must not exist.
func copyRecord(src, dst string, overwrite bool) error {
	_, err := os.Stat(dst)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	switch {
	case overwrite && !exists:
		return fmt.Errorf("%s: %w", dst, kerrors.ErrDestinationMissing)
	case !overwrite && exists:
		return fmt.Errorf("%s: %w", dst, kerrors.ErrDestinationExists)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// renameRecord moves a file to a destination that must not exist and
// prunes directories left empty, up to root.
func renameRecord(src, dst, root string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, kerrors.ErrDestinationExists)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	return pruneEmptyDirs(filepath.Dir(src), root)
}

// removeRecord deletes a file and prunes directories left empty, up to
// root. found is false if the file did not exist.
func removeRecord(file, root string) (found bool, err error) {
	err = os.Remove(file)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, pruneEmptyDirs(filepath.Dir(file), root)
}

// pruneEmptyDirs removes dir and its parents while they are empty,
// stopping at root, which is never removed.
func pruneEmptyDirs(dir, root string) error {
	root = filepath.Clean(root)

	for dir = filepath.Clean(dir); dir != root && within(dir, root); dir = filepath.Dir(dir) {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return nil
		}
		if err := os.Remove(dir); err != nil {
			return err
		}
	}
	return nil
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
