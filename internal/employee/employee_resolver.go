package employee

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"go-buk-export/internal/normalize"
	"go-buk-export/internal/shared/attrs"
)

// The resolver is the single entry point for pulling a logical field
// out of a record. Tenants store the same field in different places
// (job-level custom attributes, employee-level custom attributes, the
// record root), under different spellings; precedence is expressed as
// an ordered list of sources searched with a canonical alias set.
// Lookups are zero-preserving: "absent" is decided by presence, never
// by falsiness, so a numeric 0 resolves to "0".

// ResolveOptions steers a primary lookup.
type ResolveOptions struct {
	// PreferJob searches the current job's custom attributes before the
	// employee-level ones; the default is the reverse order.
	PreferJob bool
	// Date pushes the found value through the date normalizer.
	Date bool
}

// ResolveAttr resolves a field from the two custom-attribute mappings.
// Not-found degrades to "" and malformed input never raises.
func ResolveAttr(rec *Record, aliases []string, opt ResolveOptions) string {
	keys := attrs.NewKeySet(aliases...)

	sources := []attrs.Map{rec.CustomAttributes, rec.JobCustomAttributes()}
	if opt.PreferJob {
		sources[0], sources[1] = sources[1], sources[0]
	}

	var val attrs.Value
	for _, src := range sources {
		if v, ok := src.Lookup(keys); ok {
			val = v
			break
		}
	}

	if opt.Date {
		return normalize.Date(val.String())
	}
	return val.String()
}

// ResolveAny widens the search to four locations in fixed order:
// employee root, employee custom attributes, current job root, current
// job custom attributes. Used as a fallback when the primary resolver
// comes back empty.
func ResolveAny(rec *Record, aliases []string, date bool) string {
	keys := attrs.NewKeySet(aliases...)

	sources := []attrs.Map{
		attrs.NewMap(rec.raw),
		rec.CustomAttributes,
	}
	if rec.CurrentJob != nil {
		sources = append(sources, attrs.NewMap(rec.CurrentJob.raw), rec.CurrentJob.CustomAttributes)
	}

	var val attrs.Value
	for _, src := range sources {
		if v, ok := src.Lookup(keys); ok {
			val = v
			break
		}
	}

	if date {
		return normalize.Date(val.String())
	}
	return val.String()
}

// PayLevelRules configures the escalating pay-level resolution. The
// tables differ between deployments, so everything variable sits here
// instead of in code.
type PayLevelRules struct {
	Aliases       []string       // spellings of the pay-level attribute
	Prefix        string         // token valid values start with
	MinLen        int            // shortest plausible value
	NotApplicable string         // sentinel marking an inapplicable value
	DeriveAliases []string       // field a missing value can be rebuilt from
	Pattern       *regexp.Regexp // last-resort token shape
}

func (r PayLevelRules) valid(s string) bool {
	return s != "" && s != r.NotApplicable && len(s) >= r.MinLen
}

// ResolvePayLevel escalates through every known location of the local
// pay level, short-circuiting on the first valid hit:
// current-job attributes, employee attributes, the attributes of the
// most recent historical job, a full scan of the payload (scored), a
// derivation from a related field, and finally a raw pattern scan.
// The deep stages exist because upstream data is inconsistent; keeping
// them behind this one function lets callers stay oblivious.
func ResolvePayLevel(rec *Record, rules PayLevelRules) string {
	keys := attrs.NewKeySet(rules.Aliases...)

	if v, ok := rec.JobCustomAttributes().Lookup(keys); ok && rules.valid(v.String()) {
		return v.String()
	}
	if v, ok := rec.CustomAttributes.Lookup(keys); ok && rules.valid(v.String()) {
		return v.String()
	}
	if v := payLevelFromHistory(rec, keys, rules); v != "" {
		return v
	}
	if v := payLevelFromScan(rec, keys, rules); v != "" {
		return v
	}
	if v := payLevelFromDerivation(rec, rules); v != "" {
		return v
	}
	return payLevelFromPattern(rec, rules)
}

// most-recent-by-start-date historical job's attributes
func payLevelFromHistory(rec *Record, keys attrs.KeySet, rules PayLevelRules) string {
	jobs := make([]Job, len(rec.Jobs))
	copy(jobs, rec.Jobs)
	sort.SliceStable(jobs, func(i, j int) bool {
		return normalize.Date(jobs[i].StartDate) > normalize.Date(jobs[j].StartDate)
	})
	for _, j := range jobs {
		if v, ok := j.CustomAttributes.Lookup(keys); ok && rules.valid(v.String()) {
			return v.String()
		}
	}
	return ""
}

// unrestricted recursive scan: collect every value under a matching
// canonical key anywhere in the payload, prefer values carrying the
// known prefix, then longer ones.
func payLevelFromScan(rec *Record, keys attrs.KeySet, rules PayLevelRules) string {
	var candidates []string
	walkDocument(gjson.Parse(rec.raw), func(key string, val gjson.Result) {
		if !keys.Has(key) {
			return
		}
		if s := strings.TrimSpace(val.String()); rules.valid(s) {
			candidates = append(candidates, s)
		}
	})
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi := strings.HasPrefix(candidates[i], rules.Prefix)
		pj := strings.HasPrefix(candidates[j], rules.Prefix)
		if pi != pj {
			return pi
		}
		return len(candidates[i]) > len(candidates[j])
	})
	return candidates[0]
}

// rebuild the value from a related field: separators stripped, fixed
// prefix prepended
func payLevelFromDerivation(rec *Record, rules PayLevelRules) string {
	related := ResolveAttr(rec, rules.DeriveAliases, ResolveOptions{PreferJob: true})
	if related == "" {
		return ""
	}
	stripped := strings.NewReplacer("-", "", "/", "", "_", "", " ", "").Replace(related)
	if stripped == "" {
		return ""
	}
	derived := rules.Prefix + strings.ToUpper(stripped)
	if rules.valid(derived) {
		return derived
	}
	return ""
}

// last resort: any string token of the fixed shape, anywhere
func payLevelFromPattern(rec *Record, rules PayLevelRules) string {
	if rules.Pattern == nil {
		return ""
	}
	found := ""
	walkDocument(gjson.Parse(rec.raw), func(_ string, val gjson.Result) {
		if found != "" || val.Type != gjson.String {
			return
		}
		if m := rules.Pattern.FindString(val.String()); m != "" {
			found = m
		}
	})
	return found
}

// walkDocument visits every key/value pair in the document, descending
// into nested objects and arrays. Array elements have no key of their
// own and are only descended into.
func walkDocument(doc gjson.Result, fn func(key string, val gjson.Result)) {
	doc.ForEach(func(k, v gjson.Result) bool {
		if k.Type == gjson.String {
			fn(k.String(), v)
		}
		if v.IsObject() || v.IsArray() {
			walkDocument(v, fn)
		}
		return true
	})
}
