package normalize

import (
	"strings"
	"unicode"
)

// Text canonicalizes s for lookups: lowercase, only letters, numbers,
// underscores and single spaces, no leading or trailing space.
// Text(Text(s)) == Text(s) for every s.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
