// Package index maintains the mapping between entry identifiers and paths.
//
// The index is a single encrypted record holding one pair per line:
//
//	550e8400-e29b-41d4-a716-446655440000 web/mail
//	6ba7b810-9dad-11d1-80b4-00c04fd430c8 bank/checking
//
// An Index value caches the parsed list. Every mutation reads the whole
// list, changes it and writes it back, then invalidates the cache, so a
// later Get in the same process always sees the change even when the file
// timestamp did not move.
//
// Get orders pairs by how often each entry was used recently (see package
// history) and then alphabetically, so interactive pickers list the most
// used entries first.
//
// Tree turns the paths into a segment tree for printing and navigation.
package index
