package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/period"
)

// Summaries holds the per-category summary tables of one run. Tables for
// categories without declarations are empty, never nil.
type Summaries struct {
	VAT            *model.SummaryTable
	PITWithholding *model.SummaryTable
	CIT            *model.SummaryTable
	PITSettlement  *model.SummaryTable
}

// All returns the tables in display order.
func (s Summaries) All() []*model.SummaryTable {
	return []*model.SummaryTable{s.VAT, s.PITWithholding, s.CIT, s.PITSettlement}
}

type summarySpec struct {
	title    string
	category model.Category
	match    func(model.Category) bool
	metrics  []string
	total    bool
}

var (
	vatSummary = summarySpec{
		title:    "VAT declarations",
		category: model.CategoryVAT,
		match:    model.Category.IsVAT,
		metrics:  []string{VATTaxableRevenue, VATDeductible, VATPayable},
		total:    true,
	}
	pitWithholdingSummary = summarySpec{
		title:    "PIT withholding declarations",
		category: model.CategoryPITWithholding,
		metrics:  []string{PITWEmployees, PITWTaxableIncome, PITWWithheld},
		total:    true,
	}
	citSummary = summarySpec{
		title:    "CIT settlement",
		category: model.CategoryCIT,
		metrics:  []string{CITRevenue, CITCosts, CITProfit, CITOtherIncome, CITPayable},
	}
	pitSettlementSummary = summarySpec{
		title:    "PIT annual settlement",
		category: model.CategoryPITSettlement,
		metrics:  []string{PITSEmployees, PITSTaxableIncome, PITSWithheld},
	}
)

// Summarize builds every summary table from the resolved declarations.
func Summarize(decls []model.Declaration) Summaries {
	return Summaries{
		VAT:            build(vatSummary, decls),
		PITWithholding: build(pitWithholdingSummary, decls),
		CIT:            build(citSummary, decls),
		PITSettlement:  build(pitSettlementSummary, decls),
	}
}

// VATSummary builds the VAT table alone.
func VATSummary(decls []model.Declaration) *model.SummaryTable {
	return build(vatSummary, decls)
}

// PITWithholdingSummary builds the periodic withholding table alone.
func PITWithholdingSummary(decls []model.Declaration) *model.SummaryTable {
	return build(pitWithholdingSummary, decls)
}

func build(spec summarySpec, decls []model.Declaration) *model.SummaryTable {
	match := spec.match
	if match == nil {
		match = func(c model.Category) bool { return c == spec.category }
	}

	byPeriod := make(map[string]model.Declaration)
	var codes []string
	for _, d := range decls {
		if !match(d.Category) {
			continue
		}
		if _, ok := byPeriod[d.Period]; ok {
			continue
		}
		byPeriod[d.Period] = d
		codes = append(codes, d.Period)
	}

	t := &model.SummaryTable{
		Title:    spec.title,
		Category: spec.category,
		Periods:  period.Sorted(codes),
		HasTotal: spec.total,
	}
	for _, name := range spec.metrics {
		m, _ := Lookup(spec.category, name)
		row := model.SummaryRow{Metric: m.Name, Label: m.Label, Total: decimal.Zero}
		for _, p := range t.Periods {
			v := m.Project(byPeriod[p].Record)
			row.Values = append(row.Values, v)
			row.Total = row.Total.Add(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
