package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Git implements Repo and Remote with the git binary.
type Git struct {
	root    string
	timeout time.Duration
}

// NewGit returns a Git for the work tree at root. The directory does not
// have to be a repository yet, see Init.
func NewGit(root string, timeout time.Duration) *Git {
	return &Git{root: root, timeout: timeout}
}

// Root returns the work tree path.
func (g *Git) Root() string {
	return g.root
}

// IsRepo reports whether root holds a .git directory.
func (g *Git) IsRepo() bool {
	info, err := os.Stat(filepath.Join(g.root, ".git"))
	return err == nil && info.IsDir()
}

// Init creates the repository.
func (g *Git) Init(ctx context.Context) error {
	if err := os.MkdirAll(g.root, 0700); err != nil {
		return err
	}
	_, err := g.Exec(ctx, "init")
	return err
}

func (g *Git) Diff(ctx context.Context, base string) ([]byte, error) {
	out, err := g.output(ctx, "-c", "core.quotePath=false", "diff", "--no-renames", "--no-color", "--no-ext-diff", base)
	if err != nil {
		return nil, fmt.Errorf("git diff %s failed: %w", base, err)
	}
	return out, nil
}

func (g *Git) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := g.Exec(ctx, append([]string{"add"}, paths...)...)
	return err
}

func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.Exec(ctx, "commit", "-m", message)
	return err
}

func (g *Git) RevParse(ctx context.Context, ref string) (string, error) {
	out, err := g.output(ctx, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s failed: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	if !g.IsRepo() {
		return false, fmt.Errorf("%s: %w", g.root, ErrNotInVCS)
	}
	out, err := g.output(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

func (g *Git) Pull(ctx context.Context, remote, branch string) error {
	_, err := g.Exec(ctx, "pull", "--no-edit", remote, branch)
	return err
}

func (g *Git) Push(ctx context.Context, remote, branch string) error {
	_, err := g.Exec(ctx, "push", remote, branch)
	return err
}

// GitDir returns the path of the .git directory.
func (g *Git) GitDir() string {
	return filepath.Join(g.root, ".git")
}

// AppendConfig appends raw text to .git/config.
func (g *Git) AppendConfig(text string) error {
	f, err := os.OpenFile(filepath.Join(g.GitDir(), "config"), os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open git config: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(text)
	return err
}

// Exec executes a raw git command in the work tree and returns its
// combined output.
func (g *Git) Exec(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.root

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\n%s",
			strings.Join(args, " "), err, string(output))
	}

	return output, nil
}

// output runs git keeping stdout separate so that warnings on stderr do not
// end up in parsed output.
func (g *Git) output(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

func (g *Git) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}

// Available reports whether git is in PATH.
func Available() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrVCSNotAvailable
	}
	return nil
}
