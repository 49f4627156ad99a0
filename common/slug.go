package common

import (
	"fmt"
	"strings"
	"unicode"
)

const maxSlugLength = 63

// Slugify turns an arbitrary display name into a URL-safe slug. When nothing
// usable remains after normalization the fallback prefix is used instead.
func Slugify(input, fallback string) (string, error) {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	if slug == "" {
		if fallback == "" {
			return "", fmt.Errorf("cannot derive slug from %q", input)
		}
		return fallback, nil
	}

	return slug, nil
}
