package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeDocument strips whitespace and uppercases a national id document
// so the same person always maps to the same client record.
func NormalizeDocument(document string) string {
	var result strings.Builder
	for _, r := range document {
		if unicode.IsSpace(r) {
			continue
		}
		result.WriteRune(unicode.ToUpper(r))
	}
	return result.String()
}

func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}
