package pass

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// Command is the Store backed by the pass(1) binary.
type Command struct {
	Layout  Layout
	Binary  string
	Timeout time.Duration
}

// NewCommand returns a Store that runs pass against layout.Root.
func NewCommand(layout Layout, timeout time.Duration) *Command {
	return &Command{Layout: layout, Binary: "pass", Timeout: timeout}
}

func (c *Command) Read(ctx context.Context, name string) ([]byte, error) {
	if _, err := os.Stat(c.Layout.File(name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, kerrors.ErrRecordNotFound)
	}

	out, err := c.run(ctx, nil, "show", name)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Command) Write(ctx context.Context, name string, content []byte) error {
	_, err := c.run(ctx, content, "insert", "--multiline", "--force", name)
	return err
}

func (c *Command) Remove(ctx context.Context, name string) error {
	_, err := c.run(ctx, nil, "rm", "--force", name)
	return err
}

// Edit runs pass edit attached to the terminal. It is not subject to the
// command timeout.
func (c *Command) Edit(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, c.Binary, "edit", name)
	cmd.Env = c.env()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pass edit %s failed: %w", name, err)
	}
	return nil
}

func (c *Command) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(c.Layout.File(name))
	if os.IsNotExist(err) {
		return time.Time{}, fmt.Errorf("%s: %w", name, kerrors.ErrRecordNotFound)
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (c *Command) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Env = c.env()
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("pass %s failed: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("pass %s failed: %w", args[0], err)
	}

	return stdout.Bytes(), nil
}

func (c *Command) env() []string {
	return append(os.Environ(), "PASSWORD_STORE_DIR="+c.Layout.Root)
}
