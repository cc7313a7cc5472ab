// Package errors provides typed error values for rpass.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Encoding errors: undecodable data (ErrInvalidDiff, ErrInvalidMarker, ErrInvalidIndex)
//   - Not-found errors: missing records or mappings (ErrNoIndex, ErrNotIndexed)
//   - Invariant errors: rule violations (ErrIdentifierMismatch, ErrDestinationExists)
//   - Input errors: unusable arguments (ErrNoEntrySelected, ErrInvalidPattern)
//   - ErrInterrupted: the user cancelled; the CLI exits with status 0
//
// I/O failures from the filesystem and child processes are returned wrapped
// as they come and are not given sentinels.
//
// # Usage
//
// Wrap errors with the offending value:
//
//	return fmt.Errorf("slave path %s: %w", path, errors.ErrNotIndexed)
//
// Handle them in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrInterrupted) {
//	    return nil
//	}
package errors
