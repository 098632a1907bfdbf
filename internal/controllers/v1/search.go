package v1

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

// matchesSearch reports if any of the fields matches the search pattern.
//
// The pattern is matched case insensitive and supports "*" as wildcard.
// A pattern without wildcards matches anywhere in a field. An empty
// pattern matches everything.
func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}

	pattern := strings.ToLower(search)
	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	for _, field := range fields {
		if glob.Glob(pattern, strings.ToLower(field)) {
			return true
		}
	}

	return false
}
