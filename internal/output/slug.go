package output

import (
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// Slugify turns a video title into a filesystem-safe file name stem.
func Slugify(title string) string {
	slug := unsafeChars.ReplaceAllString(title, "")
	slug = multiSpace.ReplaceAllString(slug, " ")
	slug = strings.Trim(slug, " .")
	return slug
}
