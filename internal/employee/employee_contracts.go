package employee

import "go-buk-export/internal/normalize"

// ContractAnalysis summarizes the contract history of one employee.
type ContractAnalysis struct {
	// OldestStartDate is the real company entry date: the minimum start
	// date across the whole history (YYYYMMDD), falling back to the
	// current contract when no historical date parses.
	OldestStartDate string
	// CurrentContractDate is the current job's start date (YYYYMMDD).
	CurrentContractDate string
	// TotalContracts counts the historical entries.
	TotalContracts int
}

// AnalyzeContracts finds the earliest start date across all contracts,
// current job included. The jobs array carries no reliable order, so
// the minimum is computed over every date that parses; lexicographic
// comparison is correct on fixed-width YYYYMMDD strings.
func AnalyzeContracts(rec *Record) ContractAnalysis {
	current := ""
	if rec.CurrentJob != nil {
		current = normalize.Date(rec.CurrentJob.StartDate)
	}

	oldest := current
	for _, j := range rec.Jobs {
		d := normalize.Date(j.StartDate)
		if d == "" {
			continue
		}
		if oldest == "" || d < oldest {
			oldest = d
		}
	}

	return ContractAnalysis{
		OldestStartDate:     oldest,
		CurrentContractDate: current,
		TotalContracts:      len(rec.Jobs),
	}
}
