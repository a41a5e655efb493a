package chunk

import "strings"

// Transform rewrites a single line before it enters a chunk. Transforms are
// pure: they may not depend on line position or neighboring lines.
type Transform func(line string) string

// DropLastToken removes the final space-delimited token from a line along
// with the space immediately preceding it. A line with no space (a single
// token) is returned unchanged. The transform is apply-once: it never
// iterates to strip further tokens.
func DropLastToken(line string) string {
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		return line[:i]
	}
	return line
}
