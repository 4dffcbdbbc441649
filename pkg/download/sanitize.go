package download

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxFilenameLen = 200

var (
	separators      = regexp.MustCompile(`[\s/\\:]+`)
	invalidChars    = regexp.MustCompile(`[^\w.-]`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Sanitize converts an arbitrary string into a safe filename fragment.
// Accented characters are decomposed and reduced to their ASCII base,
// separators become hyphens, anything outside [A-Za-z0-9_.-] is
// dropped, and the result is capped at 200 characters. An input that
// sanitizes to nothing yields "episode".
func Sanitize(name string) string {
	name = norm.NFKD.String(name)
	name = separators.ReplaceAllString(name, "-")
	name = invalidChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")

	if len(name) > maxFilenameLen {
		name = strings.Trim(name[:maxFilenameLen], "-.")
	}
	if name == "" {
		return "episode"
	}
	return name
}
