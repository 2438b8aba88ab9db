package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Punctuation that has a plain-ASCII equivalent worth keeping, plus the
// ñ/Ñ pair which must survive as n/N instead of being dropped by the
// generic filter below.
var asciiReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"“", `"`,
	"”", `"`,
	"’", "'",
	"º", "o", // masculine ordinal
	"ª", "a", // feminine ordinal
	"ñ", "n",
	"Ñ", "N",
)

// NFKD decomposition, then drop everything outside ASCII (combining
// marks included, they all sit above 0x7f after decomposition).
var asciiFilter = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// ASCII renders a string safe for the downstream consumer: punctuation
// canonicalized, diacritics stripped, non-ASCII dropped and whitespace
// collapsed.
func ASCII(s string) string {
	if s == "" {
		return ""
	}
	s = asciiReplacer.Replace(s)
	if out, _, err := transform.String(asciiFilter, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}
