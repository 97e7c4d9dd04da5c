package pathutil

import (
	"regexp"
	"strings"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// multiDot matches multiple consecutive dots.
var multiDot = regexp.MustCompile(`\.{2,}`)

// SanitizeFilename makes name safe to use as a single path element.
// Separators and illegal characters become underscores, as do spaces.
func SanitizeFilename(name string) string {
	name = illegalChars.ReplaceAllString(name, "_")
	name = multiDot.ReplaceAllString(name, ".")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Trim(name, ".")
}
