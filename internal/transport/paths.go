package transport

import "strings"

// Separator is placed between the base host and a sub path.
const Separator = "/"

// JoinPaths concatenates parts with sep between each pair of segments. Nothing
// is trimmed, validated or escaped, so a trailing separator on one segment is
// kept as-is.
func JoinPaths(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
