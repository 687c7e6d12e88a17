package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// StableID derives a deterministic id from source text, so re-fetching the
// same source yields the same id. Collisions are possible but not guarded
// against.
func StableID(prefix, text string) string {
	sum := md5.Sum([]byte(text))
	return prefix + "-" + hex.EncodeToString(sum[:])[:8]
}

// Truncate shortens s to at most max runes, appending an ellipsis marker
// when anything was cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
