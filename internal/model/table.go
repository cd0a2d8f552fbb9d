package model

import "github.com/shopspring/decimal"

// SummaryRow is one metric across periods.
type SummaryRow struct {
	Metric string
	Label  string
	Values []decimal.Decimal // parallel to SummaryTable.Periods
	Total  decimal.Decimal
}

// SummaryTable holds one row per metric and one column per period, plus a
// total column when HasTotal is set.
type SummaryTable struct {
	Title    string
	Category Category
	Periods  []string
	Rows     []SummaryRow
	HasTotal bool
}

// Empty reports whether the table has no period columns.
func (t *SummaryTable) Empty() bool {
	return t == nil || len(t.Periods) == 0
}

// Row returns the row for the named metric.
func (t *SummaryTable) Row(metric string) (SummaryRow, bool) {
	if t == nil {
		return SummaryRow{}, false
	}
	for _, r := range t.Rows {
		if r.Metric == metric {
			return r, true
		}
	}
	return SummaryRow{}, false
}

// Total returns the row total for the named metric. ok is false when the
// table is empty or has no such row.
func (t *SummaryTable) Total(metric string) (decimal.Decimal, bool) {
	if t.Empty() {
		return decimal.Zero, false
	}
	r, ok := t.Row(metric)
	if !ok {
		return decimal.Zero, false
	}
	return r.Total, true
}

// DetailRow is one catalog line. Amount catalogs fill Values; text catalogs
// such as employee listings fill Text.
type DetailRow struct {
	Code   string
	Label  string
	Values []decimal.Decimal
	Text   []string
}

// DetailTable is a fixed catalog of line items for a single document.
type DetailTable struct {
	Title   string
	Source  string
	Period  string
	Columns []string // value column headers, after code and label
	Rows    []DetailRow
}

// Empty reports whether the table has no rows.
func (t *DetailTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
