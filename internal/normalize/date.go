package normalize

import (
	"strings"
	"time"
)

// Upstream sends dates in a handful of spellings; first layout that
// parses wins.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// Date converts a raw date value to YYYYMMDD. Empty input stays empty,
// an already-normalized 8-digit string passes through untouched and an
// unparseable value degrades to "" rather than failing.
func Date(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if len(s) == 8 && allDigits(s) {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("20060102")
		}
	}
	return ""
}

// DateOrDefault is Date with a fallback for null/empty/unparseable
// input. Used for columns where the downstream system expects a
// sentinel instead of a blank (e.g. "99991231" for no termination).
func DateOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	if d := Date(v); d != "" {
		return d
	}
	return def
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
