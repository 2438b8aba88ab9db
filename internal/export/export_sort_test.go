package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-buk-export/internal/export"
)

func pnRow(pn, marker string) export.Row {
	return export.Row{"Personnel Number": pn, "Name": marker}
}

func TestSortRows(t *testing.T) {
	t.Run("numeric order, not lexicographic", func(t *testing.T) {
		rows := []export.Row{pnRow("100", ""), pnRow("9", ""), pnRow("25", "")}
		export.SortRows(rows)
		assert.Equal(t, "9", rows[0]["Personnel Number"])
		assert.Equal(t, "25", rows[1]["Personnel Number"])
		assert.Equal(t, "100", rows[2]["Personnel Number"])
	})

	t.Run("non-digits stripped before parsing", func(t *testing.T) {
		rows := []export.Row{pnRow("12.345.678-9", ""), pnRow("9876543-2", "")}
		export.SortRows(rows)
		assert.Equal(t, "9876543-2", rows[0]["Personnel Number"])
		assert.Equal(t, "12.345.678-9", rows[1]["Personnel Number"])
	})

	t.Run("unparseable keys go last", func(t *testing.T) {
		rows := []export.Row{pnRow("", "a"), pnRow("5", "b"), pnRow("sin-rut", "c")}
		export.SortRows(rows)
		assert.Equal(t, "b", rows[0]["Name"])
		// both unparseable rows keep their arrival order
		assert.Equal(t, "a", rows[1]["Name"])
		assert.Equal(t, "c", rows[2]["Name"])
	})

	t.Run("equal keys keep arrival order", func(t *testing.T) {
		rows := []export.Row{
			pnRow("7", "first"), pnRow("3", ""), pnRow("7", "second"), pnRow("7", "third"),
		}
		export.SortRows(rows)
		assert.Equal(t, "3", rows[0]["Personnel Number"])
		assert.Equal(t, "first", rows[1]["Name"])
		assert.Equal(t, "second", rows[2]["Name"])
		assert.Equal(t, "third", rows[3]["Name"])
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.NotPanics(t, func() { export.SortRows(nil) })
	})
}
