// Package attrs models the free-form custom-attribute objects BUK
// attaches to employees and jobs. Tenants configure these per
// installation, so the same logical field shows up under different
// spellings, casings and diacritics; lookups therefore match on
// canonical keys (normalize.Key) and must honor the document order of
// the source payload, which a Go map cannot do. The object is kept as
// raw JSON and walked with gjson, whose ForEach iterates keys in
// document order.
package attrs

import (
	"strings"

	"github.com/tidwall/gjson"

	"go-buk-export/internal/normalize"
)

// KeySet is a set of canonical alias forms.
type KeySet map[string]struct{}

// NewKeySet canonicalizes every alias into a lookup set.
func NewKeySet(aliases ...string) KeySet {
	s := make(KeySet, len(aliases))
	for _, a := range aliases {
		s[normalize.Key(a)] = struct{}{}
	}
	return s
}

// Has reports whether the (raw, not yet canonical) key addresses one of
// the set's aliases.
func (s KeySet) Has(key string) bool {
	_, ok := s[normalize.Key(key)]
	return ok
}

// Value is one attribute value. The found flag distinguishes "absent"
// from legitimately empty or zero values; a numeric 0 must survive as
// "0".
type Value struct {
	res   gjson.Result
	found bool
}

// Found reports whether the lookup hit a non-null value.
func (v Value) Found() bool { return v.found }

// String renders the raw value as a trimmed string. JSON null and
// absent values become "", numbers keep their source representation
// (0 stays "0").
func (v Value) String() string {
	if !v.found {
		return ""
	}
	return strings.TrimSpace(v.res.String())
}

// Map is an insertion-ordered attribute mapping backed by the raw JSON
// object it was decoded from. The zero Map is empty and safe to query.
type Map struct {
	raw string
}

// NewMap wraps a raw JSON object. Intended for payload fragments that
// were never routed through encoding/json.
func NewMap(raw string) Map { return Map{raw: raw} }

// UnmarshalJSON keeps the object verbatim; no validation happens here
// because lookups tolerate any shape.
func (m *Map) UnmarshalJSON(b []byte) error {
	m.raw = string(b)
	return nil
}

// IsZero reports whether there is nothing to look up.
func (m Map) IsZero() bool { return m.raw == "" || m.raw == "null" }

// Lookup returns the first value whose key canonicalizes into keys,
// scanning in document order. A match on a JSON null ends the scan of
// this mapping but reports not-found, so callers fall through to their
// next source, mirroring how absent and null are interchangeable in
// tenant data.
func (m Map) Lookup(keys KeySet) (Value, bool) {
	if m.IsZero() {
		return Value{}, false
	}
	parsed := gjson.Parse(m.raw)
	if !parsed.IsObject() {
		return Value{}, false
	}
	var out Value
	parsed.ForEach(func(k, v gjson.Result) bool {
		if !keys.Has(k.String()) {
			return true
		}
		if v.Type != gjson.Null {
			out = Value{res: v, found: true}
		}
		return false
	})
	return out, out.found
}
