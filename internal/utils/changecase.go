package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// SentenceCase lower-cases the text and upper-cases its first letter.
func SentenceCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// CapitalizeWords title-cases every word, trimming any trailing full stop.
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	return titleCaser.String(strings.ToLower(s))
}
