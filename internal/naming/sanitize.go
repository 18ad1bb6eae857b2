package naming

import (
	"regexp"
	"strings"
)

var (
	invalidCharsRegex = regexp.MustCompile(`[^a-z0-9._-]+`)
	multiHyphenRegex  = regexp.MustCompile(`-+`)
)

const maxSlugLen = 200

// Slugify turns s into a filesystem- and tmux-safe handle: lowercased,
// anything outside [a-z0-9._-] collapsed to a single hyphen, leading and
// trailing hyphens trimmed, capped at maxSlugLen runes.
func Slugify(s string) string {
	lowered := strings.ToLower(s)
	replaced := invalidCharsRegex.ReplaceAllString(lowered, "-")
	collapsed := multiHyphenRegex.ReplaceAllString(replaced, "-")
	trimmed := strings.Trim(collapsed, "-")
	if len(trimmed) > maxSlugLen {
		trimmed = strings.Trim(trimmed[:maxSlugLen], "-")
	}
	return trimmed
}
