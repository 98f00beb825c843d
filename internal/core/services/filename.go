package services

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	unsafeChars         = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multipleSpaces      = regexp.MustCompile(`\s+`)
	multipleUnderscores = regexp.MustCompile(`_+`)
)

// SanitizeFileName makes a client-supplied file name safe for use inside a
// storage key. URL-encoded names are decoded first, unsafe characters are
// dropped, runs of whitespace and underscores are collapsed, and remaining
// spaces become underscores. Never returns an empty string.
func SanitizeFileName(name string) string {
	if decoded, err := url.QueryUnescape(name); err == nil {
		name = decoded
	}

	name = unsafeChars.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = multipleUnderscores.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")

	if name == "" {
		return "untitled"
	}
	return name
}
