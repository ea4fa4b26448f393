// Package normalize cleans up catalogue text before it is stored or indexed.
package normalize

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a string to a URL-safe slug.
// "Science Fiction" -> "science-fiction", "Café/Crème" -> "cafe-creme".
func Slugify(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Subjects slugifies each subject, dropping empties and duplicates while
// keeping first-seen order.
func Subjects(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		slug := Slugify(s)
		if slug == "" || slices.Contains(out, slug) {
			continue
		}
		out = append(out, slug)
	}
	return out
}
