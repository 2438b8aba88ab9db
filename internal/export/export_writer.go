package export

import (
	"encoding/csv"
	"os"

	"go-buk-export/internal/shared/apperror"
)

// WriteCSV serializes rows to a ";"-delimited UTF-8 file: one header
// row with the given columns, one data row per entry in column order.
// Callers skip the call entirely for empty row sets: an empty export
// produces no file.
func WriteCSV(path string, cols []string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeWriteFailed, "could not create "+path, 0)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(cols); err != nil {
		return apperror.Wrap(err, apperror.CodeWriteFailed, "could not write header to "+path, 0)
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return apperror.Wrap(err, apperror.CodeWriteFailed, "could not write row to "+path, 0)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperror.Wrap(err, apperror.CodeWriteFailed, "could not flush "+path, 0)
	}
	return f.Close()
}
