// Package vcs wraps the git binary for the master store and the sync mirror.
//
// Every operation is a child process run in the repository work tree and
// waited on to completion. Failures carry git's output:
//
//	git commit -m rpass sync failed: exit status 1
//	nothing to commit, working tree clean
//
// Diff always disables rename detection. A renamed entry must show up as a
// changed path line inside the record or as a removal plus an addition,
// never as a git rename.
package vcs
