// Package workflows provides high-level orchestration for rpass commands.
//
// Workflows coordinate the index, the entry repository, the secret store
// and the sync engine to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, prompts, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Asks the user when something is missing
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows receive an Env with every collaborator already wired, so tests
// can swap the secret store for a plaintext one.
//
// Commands that need a confirmation between looking and acting are split
// in two: InitCandidates and Init, PlanBulkRename and BulkRename.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Move(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrPathCollision) {
//	    // Suggest another destination
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
