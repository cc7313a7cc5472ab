package utils

import (
	"errors"

	"github.com/charmbracelet/huh"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// Confirm asks a yes/no question. Aborting the prompt returns
// ErrInterrupted.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, promptError(err)
}

// Ask reads one line of text. An empty answer is allowed.
func Ask(title string) (string, error) {
	var answer string
	err := huh.NewInput().
		Title(title).
		Value(&answer).
		Run()
	return answer, promptError(err)
}

// Choose lets the user pick one of options and returns it.
func Choose(title string, options []string) (string, error) {
	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Height(15).
		Value(&choice).
		Run()
	return choice, promptError(err)
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return kerrors.ErrInterrupted
	}
	return err
}
