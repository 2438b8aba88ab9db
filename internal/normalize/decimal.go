package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalTwoPlaces formats a raw amount to a fixed 2-place decimal.
// String inputs may use either locale convention; when both separators
// are present the rightmost one is the decimal point and the other a
// thousands separator. A lone comma is decimal only when exactly one
// appears with at most two digits after it. Anything that fails to
// parse comes back unchanged so the raw value stays auditable
// downstream; this function never zeroes an amount silently.
func DecimalTwoPlaces(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	// booleans arrive stringified from JSON payloads
	switch s {
	case "true":
		return "1.00"
	case "false":
		return "0.00"
	}

	n := strings.ReplaceAll(s, " ", "")
	hasComma := strings.Contains(n, ",")
	hasDot := strings.Contains(n, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(n, ",") > strings.LastIndex(n, ".") {
			n = strings.ReplaceAll(n, ".", "")
			n = strings.ReplaceAll(n, ",", ".")
		} else {
			n = strings.ReplaceAll(n, ",", "")
		}
	case hasComma:
		if strings.Count(n, ",") == 1 && len(n[strings.LastIndex(n, ",")+1:]) <= 2 {
			n = strings.ReplaceAll(n, ",", ".")
		} else {
			n = strings.ReplaceAll(n, ",", "")
		}
	}

	n = stripNonNumeric(n)
	switch n {
	case "", ".", "-", "-.", ".-":
		return s
	}

	d, err := decimal.NewFromString(n)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
