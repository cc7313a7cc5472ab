// Package syncer reconciles the identifier-addressed store with its
// path-named mirror.
//
// The master store keeps every entry at uuids/<uuid>.gpg so paths stay
// secret. Clients that cannot read the index (a phone, for instance) use
// the mirror, a separate git repository where each entry sits at
// <path>.gpg. A run diffs both repositories against the commits recorded
// in the sync marker and then, strictly in this order:
//
//  1. copies entries added on the master into the mirror
//  2. deletes mirror files of entries removed on the master, pruning
//     directories left empty
//  3. renames and refreshes mirror files of modified entries
//  4. removes master entries whose mirror file was deleted
//  5. creates master entries for new mirror files, with a fresh identifier
//  6. copies mirror edits back into the master after checking that the
//     identifier and path were left alone
//
// Mirror changes are committed and, when applying, the marker is moved to
// both HEADs. Without Apply the same decisions are made and reported as
// actions, but nothing is written.
//
// A run is not transactional: if a step fails the earlier steps stay
// applied and the marker is not moved. Run refuses to start while the
// mirror has uncommitted changes so such a state is noticed.
//
// Daemon repeats pull, run and push whenever watched directories change.
package syncer
