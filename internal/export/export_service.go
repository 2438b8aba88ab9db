package export

import (
	"context"

	"go.uber.org/zap"

	"go-buk-export/internal/buk"
	"go-buk-export/internal/employee"
	"go-buk-export/internal/normalize"
)

// Fetcher is the upstream API surface the service consumes. *buk.Client
// satisfies it; tests substitute fakes.
type Fetcher interface {
	ProcessPeriods(ctx context.Context) ([]buk.Period, error)
	Employees(ctx context.Context, page int) ([]employee.Record, int, error)
}

// Options carries the run parameters the service needs beyond its
// collaborators.
type Options struct {
	ActivePath     string // output file for active employees
	TerminatedPath string // output file for terminated employees
	MinEntryDate   string // YYYYMMDD gate for the active export
}

// Summary reports what one run produced.
type Summary struct {
	ActiveRows     int
	TerminatedRows int
	EmployeesSeen  int
	PagesFetched   int
}

type Service struct {
	fetcher Fetcher
	tables  *CodeTables
	opts    Options
	logger  *zap.Logger
}

func NewService(fetcher Fetcher, tables *CodeTables, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.L()
	}
	return &Service{
		fetcher: fetcher,
		tables:  tables,
		opts:    opts,
		logger:  logger.Named("export.service"),
	}
}

// Run drives one full export: discover the payroll periods, fetch
// employees page by page, classify each into the active or terminated
// output, sort both sets and write the files. A page-fetch failure
// halts pagination but keeps everything accumulated so far; a single
// malformed employee never aborts the run.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	periods, err := s.fetcher.ProcessPeriods(ctx)
	if err != nil {
		// non-fatal: both filter branches degrade to zero rows
		s.logger.Warn("process periods fetch failed", zap.Error(err))
	}

	closedStart, closedEnd, haveClosed := buk.LatestPeriod(periods, buk.StatusClosed)
	if haveClosed {
		s.logger.Info("latest closed period",
			zap.String("start", closedStart), zap.String("end", closedEnd))
	} else {
		s.logger.Warn("no closed period found; terminated output will be empty")
	}
	openStart, openEnd, haveOpen := buk.LatestPeriod(periods, buk.StatusOpen)
	if haveOpen {
		s.logger.Info("latest open period",
			zap.String("start", openStart), zap.String("end", openEnd))
	} else {
		s.logger.Warn("no open period found; active output will be empty")
	}

	var activeRows, terminatedRows []Row
	expected := 0

	for page := 1; ; page++ {
		records, total, err := s.fetcher.Employees(ctx, page)
		if err != nil {
			// partial-result policy: keep what we have
			s.logger.Error("page fetch failed, stopping pagination",
				zap.Int("page", page), zap.Error(err))
			break
		}
		if len(records) == 0 {
			break
		}
		if expected == 0 && total > 0 {
			expected = total
		}
		sum.PagesFetched++

		addedActive, addedTerminated := 0, 0
		for i := range records {
			rec := &records[i]
			sum.EmployeesSeen++

			var startDate, endDate string
			if rec.CurrentJob != nil {
				startDate = normalize.Date(rec.CurrentJob.StartDate)
				endDate = normalize.Date(rec.CurrentJob.EndDate)
			}

			// terminated: exit date inside the closed-period window
			if !rec.Active() {
				if haveClosed && endDate != "" && closedStart <= endDate && endDate <= closedEnd {
					terminatedRows = append(terminatedRows, BuildRow(rec, s.tables, ""))
					addedTerminated++
				}
				continue
			}

			// active: requires an open period, a start inside it and
			// the four derived dates passing the entry-date gate
			if !haveOpen {
				continue
			}
			if startDate == "" || startDate > openEnd {
				continue
			}
			analysis := employee.AnalyzeContracts(rec)
			gates := []string{
				analysis.OldestStartDate, // company entry date
				analysis.OldestStartDate, // service date
				startDate,                // date contract status
				startDate,                // date SPS eligibility
			}
			if !allValidDates(gates, s.opts.MinEntryDate) {
				continue
			}
			activeRows = append(activeRows, BuildRow(rec, s.tables, ""))
			addedActive++
		}

		s.logger.Info("page processed",
			zap.Int("page", page),
			zap.Int("page_records", len(records)),
			zap.Int("added_active", addedActive),
			zap.Int("added_terminated", addedTerminated),
			zap.Int("seen", sum.EmployeesSeen),
			zap.Int("expected", expected),
		)
	}

	SortRows(activeRows)
	SortRows(terminatedRows)
	sum.ActiveRows = len(activeRows)
	sum.TerminatedRows = len(terminatedRows)

	if len(activeRows) > 0 {
		if err := WriteCSV(s.opts.ActivePath, Columns, activeRows); err != nil {
			return sum, err
		}
		s.logger.Info("active export written",
			zap.String("path", s.opts.ActivePath), zap.Int("rows", len(activeRows)))
	} else {
		s.logger.Info("no active rows; skipping file", zap.String("path", s.opts.ActivePath))
	}

	if len(terminatedRows) > 0 {
		if err := WriteCSV(s.opts.TerminatedPath, Columns, terminatedRows); err != nil {
			return sum, err
		}
		s.logger.Info("terminated export written",
			zap.String("path", s.opts.TerminatedPath), zap.Int("rows", len(terminatedRows)))
	} else {
		s.logger.Info("no terminated rows; skipping file", zap.String("path", s.opts.TerminatedPath))
	}

	s.logger.Info("export summary",
		zap.Int("active", sum.ActiveRows),
		zap.Int("terminated", sum.TerminatedRows),
		zap.Int("employees_seen", sum.EmployeesSeen),
		zap.Int("pages", sum.PagesFetched),
	)
	return sum, nil
}

func allValidDates(dates []string, min string) bool {
	for _, d := range dates {
		if d == "" || d < min {
			return false
		}
	}
	return true
}
