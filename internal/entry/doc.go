// Package entry decodes and encodes secret records.
//
// A record is plain text once decrypted:
//
//	hunter2
//	user: alice
//	url: https://mail.example.com
//	path: web/mail
//	recovery code 1234
//	uuid: 550e8400-e29b-41d4-a716-446655440000
//
// The first line is the password. Lines starting with a configured key
// prefix (ignoring case) fill the matching field; any other non-empty line
// is kept in Extra. Fields may appear in any order when read and are always
// written in the order above, identifier last.
//
// Repository binds the codec to a pass.Store so that entries can be loaded
// and written by identifier.
package entry
