// Package cmd testing utilities: a throwaway store wired into the commands
// and helpers to run a command line and capture what it prints.
package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/rpass/internal/configs"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/pass/passtest"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

// setupTestEnvironment points the commands at a plaintext store with an
// empty index and a config file under a temporary directory.
func setupTestEnvironment(t *testing.T) (*workflows.Env, *passtest.Dir) {
	t.Helper()
	root := t.TempDir()

	originalSettings := configs.RpassSettings
	settings := &configs.Settings{
		HomeDir:    filepath.Join(root, "home"),
		ConfigPath: filepath.Join(root, "config", "config.toml"),
		StoreRoot:  filepath.Join(root, "store"),
	}
	configs.RpassSettings = settings

	config := configs.DefaultConfig()
	store := &passtest.Dir{Layout: workflows.NewLayout(settings.StoreRoot, config.Main)}
	env := workflows.NewEnvWithStore(config, settings, store, logger.Logger{})
	if err := env.Index.Write(context.Background(), nil); err != nil {
		t.Fatalf("Failed to write the index: %v", err)
	}

	ResetGlobalState()
	SetEnv(env)

	t.Cleanup(func() {
		configs.RpassSettings = originalSettings
		ResetGlobalState()
	})

	return env, store
}

// runCLI executes args against a fresh root command and returns everything
// printed to stdout and stderr.
func runCLI(args ...string) (string, error) {
	return captureOutput(func() error {
		root := createTestCLI()
		root.SetArgs(args)
		return root.Execute()
	})
}

// createTestCLI creates a complete CLI instance for testing.
func createTestCLI() *cobra.Command {
	resetCommandState()
	resetFlags(insertCmd.Root())

	root := &cobra.Command{
		Use:           "rpass",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	AddCommands(root)
	return root
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to read captured output: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
