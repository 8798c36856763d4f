package territory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes,
// turning "Île-de-France" into "Ile-de-France".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeAlias folds a free-form territory identifier into the canonical
// alias-table key shape: lower case, diacritics stripped, punctuation
// replaced by spaces, internal whitespace collapsed.
func NormalizeAlias(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// Transform failures only occur on broken UTF-8; fall back to the
		// raw input so resolution degrades instead of panicking.
		folded = raw
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
