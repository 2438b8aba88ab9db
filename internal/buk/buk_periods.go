package buk

import (
	"context"

	"github.com/tidwall/gjson"

	"go-buk-export/internal/normalize"
)

// Period is one payroll processing window from /process_periods. Month
// holds the window start (the API names it "month" or "start" depending
// on version); dates stay in their raw spelling until the caller
// normalizes them.
type Period struct {
	Status  string
	Month   string
	EndDate string
}

// PeriodStatus selects a period family. Upstream emits Spanish status
// tokens, the canonical matcher below accepts both spellings.
type PeriodStatus int

const (
	StatusOpen PeriodStatus = iota
	StatusClosed
)

var periodStatusTokens = map[PeriodStatus]map[string]struct{}{
	StatusOpen:   {"open": {}, "abierto": {}},
	StatusClosed: {"closed": {}, "cerrado": {}},
}

// ProcessPeriods fetches the period list. The payload is either an
// envelope {"data": [...]} or a bare array.
func (c *Client) ProcessPeriods(ctx context.Context) ([]Period, error) {
	body, err := c.get(ctx, c.baseURL+"/process_periods")
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	items := root.Get("data")
	if !items.Exists() {
		items = root
	}

	var periods []Period
	items.ForEach(func(_, it gjson.Result) bool {
		p := Period{
			Status:  it.Get("status").String(),
			Month:   it.Get("month").String(),
			EndDate: it.Get("end_date").String(),
		}
		if p.Month == "" {
			p.Month = it.Get("start").String()
		}
		periods = append(periods, p)
		return true
	})
	return periods, nil
}

// LatestPeriod picks the most recent period of the given status: the
// one with the maximum end date among entries whose start and end both
// normalize. Absence is reported, not an error; the caller's filter
// branch simply yields nothing.
func LatestPeriod(periods []Period, status PeriodStatus) (start, end string, ok bool) {
	tokens := periodStatusTokens[status]
	for _, p := range periods {
		if _, match := tokens[normalize.Key(p.Status)]; !match {
			continue
		}
		s := normalize.Date(p.Month)
		e := normalize.Date(p.EndDate)
		if s == "" || e == "" {
			continue
		}
		if !ok || e > end {
			start, end, ok = s, e, true
		}
	}
	return start, end, ok
}
