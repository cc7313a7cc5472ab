package utils

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"

	kerrors "github.com/PolarWolf314/rpass/internal/errors"
)

// passwordAttempts bounds how often a mismatching repetition is retried.
const passwordAttempts = 3

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadNewPassword asks for a password twice until both inputs match.
func ReadNewPassword() (string, error) {
	for range passwordAttempts {
		first, err := ReadPassphrase("Enter a password: ")
		if err != nil {
			return "", err
		}
		if len(first) == 0 {
			return "", kerrors.ErrEmptyPassword
		}

		second, err := ReadPassphrase("Repeat the password: ")
		if err != nil {
			return "", err
		}

		if bytes.Equal(first, second) {
			return string(first), nil
		}
		fmt.Fprintln(os.Stderr, "The two passwords don't match, try again.")
	}

	return "", fmt.Errorf("passwords did not match after %d attempts", passwordAttempts)
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
