package route

import (
	"strings"
	"unicode"
)

// Slugify lower-cases a single path segment and collapses every run of characters that is not a
// letter or digit into one dash: "8. Error Handling" becomes "8-error-handling".
func Slugify(segment string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(segment) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}

		pendingDash = true
	}

	return b.String()
}

func slugifyPath(p string) string {
	if p == "" {
		return ""
	}

	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if slug := Slugify(s); slug != "" {
			out = append(out, slug)
		}
	}

	return strings.Join(out, "/")
}
