package errors

import "errors"

// Encoding errors indicate data that could not be decoded.
var (
	// ErrInvalidUTF8 indicates command output or record content is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrInvalidDiff indicates the version control diff output could not be parsed.
	ErrInvalidDiff = errors.New("invalid diff output")

	// ErrInvalidMarker indicates the sync marker does not hold two 40 character commit hashes.
	ErrInvalidMarker = errors.New("invalid sync marker")

	// ErrInvalidIdentifier indicates a malformed UUID where one is required.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidIndex indicates an index line that is not "<uuid> <path>".
	ErrInvalidIndex = errors.New("invalid index record")
)

// Not-found errors indicate a record or mapping that does not exist.
var (
	// ErrNoIndex indicates the index record does not exist yet.
	ErrNoIndex = errors.New("index record not found, run 'rpass init' first")

	// ErrNotIndexed indicates a path has no identifier in the index.
	ErrNotIndexed = errors.New("path is not in the index")

	// ErrUnknownIdentifier indicates an identifier has no path in the index.
	ErrUnknownIdentifier = errors.New("identifier is not in the index")

	// ErrMarkerNotFound indicates the sync marker file is missing.
	ErrMarkerNotFound = errors.New("sync marker not found, run 'rpass sync init' first")

	// ErrRecordNotFound indicates the secret store has no record under the requested name.
	ErrRecordNotFound = errors.New("record not found")
)

// Invariant errors indicate state that violates the store's rules.
var (
	// ErrEmptyEntry indicates a record without a password line.
	ErrEmptyEntry = errors.New("entry is empty")

	// ErrEntryWithoutPath indicates an entry has no path field.
	ErrEntryWithoutPath = errors.New("entry has no path")

	// ErrIdentifierMismatch indicates an entry declares a different identifier than expected.
	ErrIdentifierMismatch = errors.New("entry identifier does not match the index")

	// ErrPathMismatch indicates an entry declares a different path than expected.
	ErrPathMismatch = errors.New("entry path does not match the index")

	// ErrDestinationExists indicates a copy or rename target already exists.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationMissing indicates an overwrite target does not exist.
	ErrDestinationMissing = errors.New("destination does not exist")

	// ErrDuplicateIdentifier indicates the identifier is already in the index.
	ErrDuplicateIdentifier = errors.New("identifier is already in the index")

	// ErrPathCollision indicates another identifier already uses the path.
	ErrPathCollision = errors.New("path is already used by another entry")

	// ErrDirtyMirror indicates the slave repository has uncommitted changes.
	ErrDirtyMirror = errors.New("sync repository has uncommitted changes")
)

// Input errors indicate a command was given unusable arguments.
var (
	// ErrNoEntrySelected indicates neither a path nor an identifier was given.
	ErrNoEntrySelected = errors.New("no entry selected, use --path or --id")

	// ErrEmptyPassword indicates an entry would be stored without a password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrInvalidPattern indicates a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrStoreNotInitialized indicates the store directory does not exist.
	ErrStoreNotInitialized = errors.New("password store not found, run 'pass init' first")
)

// ErrInterrupted signals that the user cancelled. It is not a failure.
var ErrInterrupted = errors.New("interrupted")
