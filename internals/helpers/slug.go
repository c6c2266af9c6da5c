package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const defaultSlugLen = 100

// Slugify folds free text into [a-z0-9-] for object keys: accents are
// stripped (é → e), any other run of characters becomes a single "-". The
// result is at most maxLen bytes and never empty ("item").
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
		if b.Len() >= maxLen {
			break
		}
	}

	out := b.String()
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	out = strings.Trim(out, "-")
	if out == "" {
		return "item"
	}
	return out
}
