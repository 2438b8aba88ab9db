package export

import (
	"strconv"
	"strings"

	"go-buk-export/internal/employee"
	"go-buk-export/internal/normalize"
	"go-buk-export/internal/shared/attrs"
)

// Domain derivations combining resolved fields. Every mapper degrades
// to "" on input it cannot classify; none of them error.

// MapGender maps the free-form gender value to the numeric code the
// consumer expects: 1 male, 2 female, "" unknown.
func MapGender(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "m", "male", "masculino", "hombre":
		return "1"
	case "f", "female", "femenino", "mujer":
		return "2"
	}
	return ""
}

// Salutation derives Sr./Sra. from the gender value.
func Salutation(v string) string {
	switch MapGender(v) {
	case "1":
		return "Sr."
	case "2":
		return "Sra."
	}
	return ""
}

// ContractTypeCode classifies a raw contract type into P (permanent) or
// T (temporary) by keyword, permanent checked first.
func (t *CodeTables) ContractTypeCode(v string) string {
	s := strings.TrimSpace(strings.ToLower(normalize.ASCII(v)))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if _, ok := t.PermanentSynonyms[s]; ok {
		return "P"
	}
	for _, token := range t.PermanentSubstrings {
		if strings.Contains(s, token) {
			return "P"
		}
	}
	if _, ok := t.TemporarySynonyms[s]; ok {
		return "T"
	}
	for _, token := range t.TemporarySubstrings {
		if strings.Contains(s, token) {
			return "T"
		}
	}
	return ""
}

// ContractIdentifier maps the P/T code to the country-specific contract
// type identifier.
func (t *CodeTables) ContractIdentifier(code string) string {
	switch code {
	case "P":
		return t.PermanentContractID
	case "T":
		return t.TemporaryContractID
	}
	return ""
}

// ContractStatus classifies the contract: 0 terminated (has end date),
// 1 dormant (no end date but inactive status), 3 active (default).
// First match wins.
func (t *CodeTables) ContractStatus(rec *employee.Record) string {
	if !rec.Active() {
		return "0"
	}
	if _, ok := t.DormantStatuses[strings.ToLower(strings.TrimSpace(rec.Status))]; ok {
		return "1"
	}
	return "3"
}

// EmployeeGroup maps the raw contract type to the employee-group code:
// indefinido 1, fijo 2, otherwise empty.
func EmployeeGroup(contractTypeRaw string) string {
	switch strings.ToLower(strings.TrimSpace(contractTypeRaw)) {
	case "indefinido":
		return "1"
	case "fijo":
		return "2"
	}
	return ""
}

// EmployeeCategory derives the category from the management group:
// "O" means individual contributor, any other non-empty value counts as
// management.
func EmployeeCategory(managementGroup string) string {
	s := strings.ToUpper(strings.TrimSpace(managementGroup))
	if s == "" {
		return ""
	}
	if s == "O" {
		return "Individual Contributor"
	}
	return "Management"
}

// WorkforceType prefers the explicit numeric attribute and falls back
// to deriving it from the worker-type text: GASTO 1, COSTO 2.
func WorkforceType(rec *employee.Record) string {
	raw := employee.ResolveAttr(rec, []string{"Workforce Type"}, employee.ResolveOptions{PreferJob: true})
	if raw != "" && isDigits(raw) {
		return raw
	}
	txt := employee.ResolveAttr(rec, []string{"Tipo de Trabajador", "Worker Type"}, employee.ResolveOptions{PreferJob: true})
	switch strings.ToUpper(strings.TrimSpace(txt)) {
	case "GASTO", "GASTOS":
		return "1"
	case "COSTO", "COSTOS":
		return "2"
	}
	return ""
}

// ExitReason determines the exit-reason code. An active employee
// (exit date equal to the no-exit sentinel) must have an empty reason;
// a terminated one must always carry a code, the "other" fallback when
// the raw reason has no mapping.
func (t *CodeTables) ExitReason(rec *employee.Record, companyExitDate string) string {
	if companyExitDate == t.NoExitDate {
		return ""
	}

	raw := employee.ResolveAttr(rec, []string{"Exit Reason"}, employee.ResolveOptions{PreferJob: true})
	if raw == "" && rec.CurrentJob != nil {
		raw = strings.TrimSpace(rec.CurrentJob.TerminationReason)
	}
	if raw == "" {
		raw = rec.RootString("termination_reason")
	}

	clean := strings.ToLower(strings.TrimSpace(raw))
	if code, ok := t.ExitReasons[clean]; ok {
		return code
	}
	return t.ExitReasonOther
}

// BankCode maps a bank name to its numeric code: exact match first,
// then case-insensitive, otherwise the cleaned name passes through so
// the value is never lost.
func (t *CodeTables) BankCode(bankName string) string {
	clean := strings.TrimSpace(bankName)
	if clean == "" {
		return ""
	}
	if code, ok := t.BankCodes[clean]; ok {
		return code
	}
	for name, code := range t.BankCodes {
		if strings.EqualFold(clean, name) {
			return code
		}
	}
	return clean
}

// NationalityCodes extracts up to three nationality codes. Sources are
// tried in priority order and the first that yields anything wins
// entirely: the explicit list, the single nationality string, then the
// three separately-named custom attributes.
func NationalityCodes(rec *employee.Record) (string, string, string) {
	if len(rec.Nationalities) > 0 {
		var codes []string
		for _, n := range rec.Nationalities {
			if c := normalize.Country(n); c != "" {
				codes = append(codes, c)
			}
		}
		codes = append(codes, "", "", "")
		return codes[0], codes[1], codes[2]
	}
	if strings.TrimSpace(rec.Nationality) != "" {
		return normalize.Country(rec.Nationality), "", ""
	}
	var out [3]string
	aliases := [][]string{
		{"Nationality 1", "nationality_1"},
		{"Nationality 2", "nationality_2"},
		{"Nationality 3", "nationality_3"},
	}
	for i, a := range aliases {
		if v, ok := rec.CustomAttributes.Lookup(attrs.NewKeySet(a...)); ok {
			out[i] = normalize.Country(v.String())
		}
	}
	return out[0], out[1], out[2]
}

// TargetIncentive replaces zero-in-any-format and empty amounts with
// the not-applicable sentinel; anything unparseable keeps its raw form.
func (t *CodeTables) TargetIncentive(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return t.NotApplicable
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 {
		return t.NotApplicable
	}
	return s
}

// SplitSurnameAffixes separates a nobiliary particle and a
// generational suffix from a full surname. Longer particles are checked
// first so "de la" wins over "de".
func (t *CodeTables) SplitSurnameAffixes(surname string) (prefix, suffix string) {
	s := strings.TrimSpace(surname)
	if s == "" {
		return "", ""
	}
	low := strings.ToLower(s)
	for _, p := range longestFirst(t.SurnamePrefixes) {
		if strings.HasPrefix(low, p+" ") {
			prefix = s[:len(p)]
			break
		}
	}
	fields := strings.Fields(s)
	last := strings.TrimRight(strings.ToLower(fields[len(fields)-1]), ".")
	if _, ok := t.SurnameSuffixes[last]; ok {
		suffix = fields[len(fields)-1]
	}
	return prefix, suffix
}

func longestFirst(prefixes []string) []string {
	out := make([]string, len(prefixes))
	copy(out, prefixes)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
