package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function
// adds one before printing.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed after Stop so tests capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops s for an interactive prompt and returns a function
// that resumes it.
func pauseSpinner(s *spinner.Spinner) func() {
	if !s.Active() {
		return func() {}
	}
	s.Stop()
	return s.Start
}

func succeeded(format string, args ...any) string {
	return ui.Success.Sprint("✓") + " " + fmt.Sprintf(format, args...)
}

func failed(err error) string {
	return ui.Error.Sprint("✗") + " " + err.Error()
}

// Selection flags shared by the commands that act on one entry.
var (
	selectPath string
	selectID   string
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&selectPath, "path", "p", "", "path of the entry")
	cmd.Flags().StringVarP(&selectID, "id", "i", "", "identifier of the entry")
}

// selection returns the entry named by --path or --id. Without either, an
// interactive terminal gets a list of indexed paths to pick from.
func selection(ctx context.Context, env *workflows.Env) (workflows.Selection, error) {
	sel := workflows.Selection{Path: selectPath, ID: selectID}
	if !sel.Empty() || !utils.IsTerminal() {
		return sel, nil
	}

	paths, err := env.Paths(ctx)
	if err != nil || len(paths) == 0 {
		return sel, err
	}

	choice, err := utils.Choose("Select an entry", paths)
	if err != nil {
		return sel, err
	}
	Logger.Debugf("Selected %s", choice)
	return workflows.Selection{Path: choice}, nil
}

// Password flags shared by insert and passwd.
var (
	passwordValue  string
	generate       bool
	generateLength int
)

func addPasswordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&passwordValue, "password", "P", "", "password to store")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random password")
	cmd.Flags().IntVarP(&generateLength, "length", "l", utils.DefaultPasswordLength, "length of a generated password")
}

// newPassword returns the password given on the command line, piped on
// stdin or typed twice at the prompt, or the length to generate one.
func newPassword() (string, int, error) {
	switch {
	case generate:
		return "", generateLength, nil
	case passwordValue != "":
		return passwordValue, 0, nil
	case !utils.IsTerminal():
		Logger.Debugf("Reading password from stdin")
		password, err := utils.ReadStdinLine()
		return password, 0, err
	default:
		password, err := utils.ReadNewPassword()
		return password, 0, err
	}
}

func resetSelectionState() {
	selectPath = ""
	selectID = ""
	passwordValue = ""
	generate = false
	generateLength = utils.DefaultPasswordLength
}
