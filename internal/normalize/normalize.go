// Package normalize canonicalizes transcript and keyword text so that all
// matching downstream is accent- and case-insensitive.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes to NFD, strips combining marks, and recomposes,
// so "ágenda" and "agenda" become identical.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, folds diacritics, and collapses every run of
// punctuation or whitespace into a single space. It is total (no failure
// mode) and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	folded, _, err := transform.String(foldDiacritics, text)
	if err != nil {
		// transform only fails on malformed UTF-8; match on the raw bytes then.
		folded = text
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
