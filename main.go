package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/rpass/cmd"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpass",
	Short: "rpass - a password store with stable identifiers and a path-named mirror.",
	Long: `rpass keeps every secret of a password store in a record named by a UUID
and maps paths to records through an encrypted index, so entries can be
renamed without touching their history.

Features:
  - Create, show, edit, move and delete entries by path or identifier
  - Index an existing path-named store
  - Mirror the store as a path-named repository and keep both in sync

Usage:
  rpass <command> [flags]

Run 'rpass help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("rpass", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'rpass --help' to see available commands.")
	},
}

func init() {
	cmd.AddCommands(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, kerrors.ErrInterrupted):
		fmt.Println(ui.Muted.Sprint("interrupted"))
	default:
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
		stop()
		os.Exit(1)
	}
}
