// Package pass wraps the external secret store.
//
// rpass never decrypts anything itself. Records are read, written and
// removed through the pass(1) command, which owns the GPG keys and commits
// every change to the store's git repository.
//
// # Layout
//
// Layout maps logical names to store records and files:
//
//	uuids/index                 the index record
//	uuids/<uuid>                one entry, path hidden inside
//	.sync/<path>                the path-named mirror copy of an entry
//	.sync/.sync_commit          the sync baseline marker
//
// Folder names and the record extension come from the configuration.
package pass
