// Package slug derives URL slugs for issues and blog posts.
package slug

import "strings"

// Make lowercases the title, strips punctuation and collapses runs of
// whitespace into single hyphens: "Launch: Vol. 1!" -> "launch-vol-1".
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
