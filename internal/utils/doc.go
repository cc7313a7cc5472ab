// Package utils provides shared helpers for the rpass commands.
//
// # Terminal Utilities
//
//   - ReadPassphrase, ReadNewPassword: hidden password input
//   - Confirm, Ask, Choose: interactive prompts; aborting returns
//     errors.ErrInterrupted
//
// # Input Utilities
//
//   - ReadStdinLine: reads a password piped on stdin
//   - CleanEntryPath: normalizes a path typed by the user
//
// # Passwords
//
//   - GeneratePassword: random passwords from crypto/rand
package utils
