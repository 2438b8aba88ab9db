package normalize

import "strings"

// chileSynonyms covers the spellings tenants actually use for Chilean
// nationality.
var chileSynonyms = map[string]struct{}{
	"CL": {}, "CH": {}, "CHILE": {}, "CHILENO": {}, "CHILENA": {},
}

// Country reduces a country/nationality value to a 2-letter code.
// Chile synonyms canonicalize to "CL", valid alpha-2 codes pass through
// uppercased and anything else is truncated to its first two characters.
func Country(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	if s == "" {
		return ""
	}
	if _, ok := chileSynonyms[s]; ok {
		return "CL"
	}
	if len(s) == 2 && isAlpha(s) {
		return s
	}
	r := []rune(s)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

// CountryOfBirth maps a 2-letter code to its 3-letter ISO form using
// the supplied table; unknown codes pass through unchanged.
func CountryOfBirth(v string, table map[string]string) string {
	code := strings.ToUpper(strings.TrimSpace(v))
	if code == "" {
		return ""
	}
	if mapped, ok := table[code]; ok {
		return mapped
	}
	return code
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
