package utils

import (
	"strings"

	"github.com/PolarWolf314/rpass/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// CleanEntryPath trims surrounding whitespace and slashes from a path typed
// by the user and collapses repeated slashes.
func CleanEntryPath(p string) string {
	parts := strings.Split(strings.TrimSpace(p), "/")
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}
