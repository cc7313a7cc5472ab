// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with color on capable terminals and fall back to
// plain decorations otherwise:
//
//	ui.Path.Sprint("web/mail")           // entry paths
//	ui.Highlight.Sprint(id.String())     // identifiers
//	ui.Directory.Sprint("web")           // inner nodes of the entry tree
//	ui.Warning.Sprint("[dry-run]")       // planned, not applied
//
// Colors are disabled when NO_COLOR is set or the terminal does not
// support them. Without color, Code uses `backticks`, Highlight 'quotes',
// Muted (parentheses) and Directory a trailing slash.
package ui
