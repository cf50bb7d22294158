package core

import (
	"strings"

	"github.com/oklog/ulid/v2"

	"todobackend/utils"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("td") returns "td_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	cleanPrefix := strings.ToLower(strings.TrimSpace(prefix))
	utils.AssertInvariant(cleanPrefix != "", "prefix cannot be empty")

	return cleanPrefix + "_" + ulid.Make().String()
}

// IsValidULID checks that id has the prefix_ULID shape produced by NewID.
func IsValidULID(id string) bool {
	prefix, rest, found := strings.Cut(id, "_")
	if !found || prefix == "" || strings.Contains(rest, "_") {
		return false
	}

	for _, r := range prefix {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}

	// ParseStrict rejects characters outside the Crockford alphabet; the upper-case
	// check keeps ids canonical since ULID parsing is case-insensitive.
	if len(rest) != ulid.EncodedSize || strings.ToUpper(rest) != rest {
		return false
	}
	_, err := ulid.ParseStrict(rest)
	return err == nil
}

// HasIDPrefix reports whether id is a valid ULID id with the given prefix
func HasIDPrefix(id, prefix string) bool {
	return IsValidULID(id) && strings.HasPrefix(id, strings.ToLower(prefix)+"_")
}
