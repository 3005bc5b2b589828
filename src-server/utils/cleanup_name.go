package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanupName normalizes a name typed into a modal: whitespace runs
// collapse to one space, words are title-cased, a trailing period is
// dropped and the result is cut to maxRunes (0 means no limit).
func CleanupName(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	s = cases.Title(language.English).String(s)
	s = strings.TrimSuffix(s, ".")
	if maxRunes > 0 && utf8.RuneCountInString(s) > maxRunes {
		s = strings.TrimSpace(string([]rune(s)[:maxRunes]))
	}
	return s
}
