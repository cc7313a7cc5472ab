// Package diff turns git diffs of the master store and the sync mirror into
// per-file change records.
//
// Both repositories are diffed against the commits stored in the sync
// marker, the only record of how far the last sync got. Records are
// compared through git's textconv driver, so a modified record shows its
// decrypted lines; a changed "path:" line is how a rename is detected.
package diff
