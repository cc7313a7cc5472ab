// Package logger provides logging for rpass commands.
//
// Terminal output is formatted with colored prefixes and controlled by
// two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown on stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Reading %d records", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal packages.
//
// The sync daemon runs unattended, so it logs through NewFileLogger, a
// zap logger writing JSON to a size-rotated file.
package logger
