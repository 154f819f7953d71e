package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanText lowercases s and strips every rune that is not a letter, digit,
// underscore or whitespace. Any unicode whitespace (NBSP, em space, ...) is
// folded to a plain space. Stored descriptions and user input both go through
// here so substring checks compare like with like.
func CleanText(input string) string {
	s := norm.NFC.String(input)
	s = strings.ToLower(s)
	return strings.Map(keepWordRune, s)
}

func Words(input string) []string {
	return strings.Fields(CleanText(input))
}

func keepWordRune(r rune) rune {
	switch {
	case isSpace(r):
		return ' '
	case r == '_', unicode.IsLetter(r), unicode.IsNumber(r):
		return r
	}
	return -1
}

// isSpace also accepts the ASCII separators U+001C..U+001F, which
// unicode.IsSpace leaves out.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
