package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacritic folding: decompose, then drop the combining marks
var keyFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

var keySeparators = strings.NewReplacer(" ", " ", "-", " ", "_", " ")

// Key converts an attribute name into its canonical comparison form:
// lowercase, diacritics folded (incl. ñ→n), NBSP/hyphen/underscore turned
// into spaces and whitespace collapsed. Two attribute names address the
// same field iff their keys are equal.
func Key(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(keyFold, s); err == nil {
		s = folded
	}
	s = keySeparators.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
