// Package strutil holds the name-normalization helpers applied before any
// category, subcategory or user write. Domain data is Brazilian Portuguese,
// so all casing goes through golang.org/x/text instead of ASCII-only ops.
package strutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var pt = language.BrazilianPortuguese

// SentenceCase trims and returns the text with the first rune upper-cased
// and the remainder lower-cased. Used for category names.
func SentenceCase(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	lowered := []rune(cases.Lower(pt).String(text))
	head := cases.Upper(pt).String(string(lowered[0]))
	return head + string(lowered[1:])
}

// TitleCase trims and title-cases every word. Used for subcategory and
// user names.
func TitleCase(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	return cases.Title(pt).String(text)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address;
// uniqueness checks always compare the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
