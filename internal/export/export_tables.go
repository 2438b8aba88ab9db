package export

import (
	"regexp"

	"go-buk-export/internal/employee"
)

// CodeTables bundles every mapping table and sentinel the export
// depends on. Deployments disagree on several of these (exit-reason
// codes, bank columns, pay-level resolution), so they travel as a value
// handed to the exporter instead of living in the mapping logic.
type CodeTables struct {
	// ExitReasons maps cleaned BUK termination reasons to the numeric
	// codes the consuming system expects; ExitReasonOther is the
	// mandatory fallback for terminated employees with no mapped reason.
	ExitReasons     map[string]string
	ExitReasonOther string

	// BankCodes maps Chilean bank names to their numeric codes.
	BankCodes map[string]string

	// CountryOfBirth maps alpha-2 to alpha-3 country codes.
	CountryOfBirth map[string]string

	// DormantStatuses are employee statuses that classify a contract as
	// dormant when no end date is present.
	DormantStatuses map[string]struct{}

	// Contract-type classification: exact synonym sets plus substring
	// tokens, checked permanent-first.
	PermanentSynonyms   map[string]struct{}
	PermanentSubstrings []string
	TemporarySynonyms   map[string]struct{}
	TemporarySubstrings []string

	// Country-specific contract identifiers for the P/T codes.
	PermanentContractID string
	TemporaryContractID string

	// StandardWorkWeek is the legal standard working week, fixed by
	// Chilean labor law.
	StandardWorkWeek string

	// Sentinels understood by the downstream consumer.
	NoExitDate    string
	NotApplicable string

	// Surname particles and generational suffixes for affix splitting.
	SurnamePrefixes []string
	SurnameSuffixes map[string]struct{}

	// PayLevel configures the escalating local-pay-level resolution.
	PayLevel employee.PayLevelRules
}

// DefaultCodeTables returns the tables of the surviving interface
// variant.
func DefaultCodeTables() *CodeTables {
	return &CodeTables{
		ExitReasons: map[string]string{
			"renuncia":               "01", // voluntary resignation
			"voluntary_resignation":  "01",
			"despido":                "02", // company dismissal
			"company_dismissal":      "02",
			"despido_empresa":        "02",
			"mutuo_acuerdo":          "03", // mutual consent
			"mutual_consent":         "03",
			"transferencia":          "04", // transfer within the group
			"transfer":               "04",
			"jubilacion":             "05", // retirement
			"retirement":             "05",
			"muerte":                 "06", // death
			"death":                  "06",
			"fin_contrato":           "07", // end of temporary contract
			"fin_servicio":           "07",
			"end_temporary_contract": "07",
			"end_contract":           "07",
			"desinversion":           "08", // divesture
			"divesture":              "08",
			"reset":                  "95",
			"reset_entry":            "95",
			"otros":                  "99",
			"other":                  "99",
			"others":                 "99",
		},
		ExitReasonOther: "99",

		BankCodes: map[string]string{
			"BCI":            "16",
			"BICE":           "28",
			"Banco de Chile": "1",
			"COOPEUCH":       "672",
			"Banco Estado":   "2",
			"Falabella":      "51",
			"Ripley":         "53",
			"Santander":      "37",
			"Scotiabank":     "14",
			"Security":       "49",
			"Itau":           "39",
			"BBVA":           "504",
			"Consorcio":      "55",
		},

		CountryOfBirth: map[string]string{
			"DE": "DEU", "AR": "ARG", "AU": "AUS", "AT": "AUT",
			"BS": "BHS", "BRB": "BRB", "BZ": "BLZ", "BO": "BOL",
			"BR": "BRA", "CL": "CHL", "CN": "CHN", "CO": "COL",
			"CR": "CRI", "DOM": "DOM", "EC": "ECU", "ES": "ESP",
			"US": "USA", "FR": "FRA", "GRC": "GRC", "GT": "GTM",
			"GY": "GUY", "HT": "HTI", "NL": "NLD", "HN": "HND",
			"EN": "IND", "IDN": "IDN", "ISR": "ISR", "IT": "ITA",
			"JM": "JAM", "JP": "JPN", "LV": "LVA", "MLT": "MLT",
			"MX": "MEX", "NI": "NIC", "NO": "NOR", "NZL": "NZL",
			"PAM": "PAN", "PY": "PRY", "PE": "PER", "PL": "POL",
			"PT": "PRT", "PR": "PRI", "RO": "ROU", "RU": "RUS",
			"SV": "SLV", "SE": "SWE", "CH": "CHE", "SR": "SUR",
			"TR": "TUR", "UA": "UKR", "VE": "VEN", "CU": "CUB",
			"HR": "HRV", "GB": "GBR",
		},

		DormantStatuses: map[string]struct{}{
			"inactivo": {}, "inactive": {}, "suspenso": {}, "suspended": {},
		},

		PermanentSynonyms: map[string]struct{}{
			"indef": {}, "permanente": {}, "permanent": {}, "p": {},
		},
		PermanentSubstrings: []string{"indefinid"},
		TemporarySynonyms:   map[string]struct{}{"t": {}},
		TemporarySubstrings: []string{"fijo", "plazo", "temporal", "fixed", "term"},

		PermanentContractID: "CHL-03",
		TemporaryContractID: "CHL-04",

		StandardWorkWeek: "45.00",

		NoExitDate:    "99991231",
		NotApplicable: "NOT_APPLICABLE",

		SurnamePrefixes: []string{
			"de la", "de los", "de las", "del", "de", "van", "von", "da", "di", "do",
		},
		SurnameSuffixes: map[string]struct{}{
			"jr": {}, "sr": {}, "iii": {}, "iv": {}, "v": {},
		},

		PayLevel: employee.PayLevelRules{
			Aliases:       []string{"Local Pay Level", "Nivel de pago local"},
			Prefix:        "CHL",
			MinLen:        5,
			NotApplicable: "NOT_APPLICABLE",
			DeriveAliases: []string{"Pay Scale Group", "Grupo de escala salarial"},
			Pattern:       regexp.MustCompile(`CHL[A-Z0-9]{7,}`),
		},
	}
}
