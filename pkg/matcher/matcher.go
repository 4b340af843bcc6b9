// Package matcher resolves free-text input against a command catalog.
package matcher

import (
	"strings"

	"github.com/praaatap/gdit.site/pkg/catalog"
)

// Normalize trims surrounding whitespace and folds case.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Match returns the first catalog entry, in declaration order, whose key is a prefix
// of the normalized input or has the normalized input as a prefix.
// Blank input never matches.
func Match(c *catalog.Catalog, raw string) (catalog.Entry, bool) {
	in := Normalize(raw)
	if in == "" {
		return catalog.Entry{}, false
	}
	for _, key := range c.Keys() {
		if strings.HasPrefix(key, in) || strings.HasPrefix(in, key) {
			return c.Lookup(key)
		}
	}
	return catalog.Entry{}, false
}

// IsClear reports whether raw is the clear control command.
func IsClear(raw string) bool {
	return Normalize(raw) == catalog.ClearCommand
}
