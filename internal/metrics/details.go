package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// Details holds the single-document tables of one run. A table is nil when
// its source declaration is absent.
type Details struct {
	VAT             *model.DetailTable
	CITMainForm     *model.DetailTable
	CITAppendix     *model.DetailTable
	BalanceSheet    *model.DetailTable
	IncomeStatement *model.DetailTable
	TrialBalance    *model.DetailTable
	PITSettlement   *model.DetailTable
	PITEmployees    *model.DetailTable
}

// All returns the non-nil tables in display order.
func (d Details) All() []*model.DetailTable {
	var out []*model.DetailTable
	for _, t := range []*model.DetailTable{
		d.VAT, d.CITMainForm, d.CITAppendix,
		d.BalanceSheet, d.IncomeStatement, d.TrialBalance,
		d.PITSettlement, d.PITEmployees,
	} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Detail builds the catalog tables. Each reads the latest-period declaration
// of its category; chart selects the trial-balance accounts.
func Detail(decls []model.Declaration, chart []model.Account) Details {
	var out Details
	if d, ok := Latest(decls, model.CategoryVAT); ok {
		out.VAT = VATDetail.Build(d)
	}
	if d, ok := Latest(decls, model.CategoryCIT); ok {
		out.CITMainForm = CITMainForm.Build(d)
		out.CITAppendix = CITAppendix.Build(d)
	}
	if d, ok := Latest(decls, model.CategoryFinancialStatements); ok {
		out.BalanceSheet = BalanceSheet.Build(d)
		out.IncomeStatement = IncomeStatement.Build(d)
		out.TrialBalance = TrialBalance(chart).Build(d)
	}
	if d, ok := Latest(decls, model.CategoryPITSettlement); ok {
		out.PITSettlement = PITSettlementDetail.Build(d)
		out.PITEmployees = Employees(d)
	}
	return out
}

// Employee appendix keys of form 05/QTT-TNCN. The four lists run in
// parallel, one element per employee.
const (
	employeeName     = "ct07"
	employeeTaxID    = "ct08"
	employeeTaxable  = "ct12"
	employeeWithheld = "ct22"
)

// Employees lists the per-employee appendix of a PIT settlement. Shorter
// columns are padded with empty cells.
func Employees(d model.Declaration) *model.DetailTable {
	names := d.Record.Strings(employeeName)
	ids := d.Record.Strings(employeeTaxID)
	taxable := amounts(d.Record, employeeTaxable)
	withheld := amounts(d.Record, employeeWithheld)

	n := max(len(names), len(ids), len(taxable), len(withheld))
	t := &model.DetailTable{
		Title:   "Tờ khai 05/QTT-TNCN - chi tiết người lao động",
		Source:  d.Source,
		Period:  d.Period,
		Columns: []string{"Họ và tên", "Mã số thuế", "Tổng TNCT (VND)", "Số thuế đã khấu trừ (VND)"},
	}
	for i := range n {
		t.Rows = append(t.Rows, model.DetailRow{
			Text: []string{at(names, i), at(ids, i), at(taxable, i), at(withheld, i)},
		})
	}
	return t
}

func amounts(rec *document.Record, key string) []string {
	raw := rec.Strings(key)
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = document.ParseNumberOr(s, decimal.Zero).String()
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
