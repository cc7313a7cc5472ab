package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is used by --generate without a length.
const DefaultPasswordLength = 20

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!#$%&*+-=?@^_~"
)

// GeneratePassword returns a random password of length characters with at
// least one character of every class.
func GeneratePassword(length int) (string, error) {
	classes := []string{lowercase, uppercase, digits, symbols}
	if length < len(classes) {
		return "", fmt.Errorf("password length must be at least %d", len(classes))
	}

	all := lowercase + uppercase + digits + symbols
	out := make([]byte, length)
	for i := range out {
		set := all
		if i < len(classes) {
			set = classes[i]
		}
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	// Move the guaranteed characters to random positions.
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}

	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate password: %w", err)
	}
	return set[n.Int64()], nil
}
