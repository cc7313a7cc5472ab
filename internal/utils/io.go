package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdinLine reads the first line of piped stdin, without the newline.
// Returns an error if stdin is a terminal or empty.
func ReadStdinLine() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	// A character device means a terminal, not piped data.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin")
	}

	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("stdin is empty")
	}
	return line, nil
}
