package export

import (
	"sort"
	"strconv"
	"strings"
)

// SortRows orders rows by the numeric value of the personnel number
// (non-digits stripped before parsing), unparseable keys last. The
// sort is stable so rows with equal keys keep their arrival order.
func SortRows(rows []Row) {
	type keyed struct {
		row Row
		num uint64
		ok  bool
	}
	ks := make([]keyed, len(rows))
	for i, r := range rows {
		n, err := strconv.ParseUint(digitsOnly(r["Personnel Number"]), 10, 64)
		ks[i] = keyed{row: r, num: n, ok: err == nil}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.ok != b.ok {
			return a.ok // parseable keys before unparseable
		}
		return a.ok && a.num < b.num
	})
	for i := range ks {
		rows[i] = ks[i].row
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
