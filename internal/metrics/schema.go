// Package metrics projects named line items out of declaration records and
// aggregates them into summary and detail tables.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// Metric names a line item, or a sum of line items, of one form.
type Metric struct {
	Name  string
	Label string
	Keys  []string
}

// Project sums the metric's keys in rec. Missing or malformed values count
// as zero.
func (m Metric) Project(rec *document.Record) decimal.Decimal {
	return rec.SumAmounts(m.Keys...)
}

// Value-added tax (01/GTGT, 02/GTGT).
const (
	VATTaxableRevenue = "vat.taxable_revenue"
	VATDeductible     = "vat.deductible"
	VATPayable        = "vat.payable"
	VATPurchaseValue  = "vat.purchase_value"
	VATPurchaseTax    = "vat.purchase_tax"
	VATCarryForward   = "vat.carry_forward"
	VATTotalRevenue   = "vat.total_revenue"
)

// Corporate income tax (03/TNDN).
const (
	CITRevenue     = "cit.revenue"
	CITCosts       = "cit.costs"
	CITProfit      = "cit.profit"
	CITOtherIncome = "cit.other_income"
	CITPayable     = "cit.payable"
)

// Personal income tax, periodic withholding (05/KK-TNCN).
const (
	PITWEmployees     = "pitw.employees"
	PITWTaxableIncome = "pitw.taxable_income"
	PITWWithheld      = "pitw.withheld"
)

// Personal income tax, annual settlement (05/QTT-TNCN).
const (
	PITSEmployees     = "pits.employees"
	PITSTaxableIncome = "pits.taxable_income"
	PITSWithheld      = "pits.withheld"
)

// Financial statements.
const (
	FSCash            = "fs.cash"
	FSInventory       = "fs.inventory"
	FSRevenue         = "fs.revenue"
	FSCostOfSales     = "fs.cost_of_sales"
	FSInterestExpense = "fs.interest_expense"
	FSProfitBeforeTax = "fs.profit_before_tax"
)

var vatMetrics = []Metric{
	{VATTaxableRevenue, "Taxable revenue", []string{"ct26", "ct29", "ct30", "ct32"}},
	{VATDeductible, "Deductible input VAT", []string{"ct25"}},
	{VATPayable, "VAT payable", []string{"ct40"}},
	{VATPurchaseValue, "Purchases value", []string{"ct23"}},
	{VATPurchaseTax, "Input VAT on purchases", []string{"ct24"}},
	{VATCarryForward, "VAT carried forward", []string{"ct43"}},
	{VATTotalRevenue, "Total sales", []string{"ct34"}},
}

var schemas = map[model.Category][]Metric{
	model.CategoryVAT:           vatMetrics,
	model.CategoryVATInvestment: vatMetrics,
	model.CategoryCIT: {
		{CITRevenue, "Revenue (appendix 03-1A)", []string{"ct04"}},
		{CITCosts, "Total costs (appendix 03-1A)", []string{"ct12"}},
		{CITProfit, "Accounting profit before tax", []string{"ctA1"}},
		{CITOtherIncome, "Other income (appendix 03-1A)", []string{"ct19"}},
		{CITPayable, "CIT payable", []string{"ctC9"}},
	},
	model.CategoryPITWithholding: {
		{PITWEmployees, "Employees", []string{"ct16"}},
		{PITWTaxableIncome, "Taxable income paid", []string{"ct21"}},
		{PITWWithheld, "Tax withheld", []string{"ct29"}},
	},
	model.CategoryPITSettlement: {
		{PITSEmployees, "Employees", []string{"ct16"}},
		{PITSTaxableIncome, "Taxable income paid", []string{"ct23"}},
		{PITSWithheld, "Tax withheld", []string{"ct31"}},
	},
	model.CategoryFinancialStatements: {
		{FSCash, "Cash and cash equivalents", []string{"scn_ct110"}},
		{FSInventory, "Inventories", []string{"scn_ct140"}},
		{FSRevenue, "Revenue", []string{"kqkd_nn_ct01"}},
		{FSCostOfSales, "Cost of goods sold", []string{"kqkd_nn_ct11"}},
		{FSInterestExpense, "Interest expense", []string{"kqkd_nn_ct23"}},
		{FSProfitBeforeTax, "Profit before tax", []string{"kqkd_nn_ct50"}},
	},
}

// Lookup returns the named metric of a category.
func Lookup(c model.Category, name string) (Metric, bool) {
	for _, m := range schemas[c] {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Schema returns every metric defined for a category.
func Schema(c model.Category) []Metric {
	return schemas[c]
}

// Value projects a named metric out of a declaration. Unknown metrics yield
// zero.
func Value(d model.Declaration, name string) decimal.Decimal {
	m, ok := Lookup(d.Category, name)
	if !ok {
		return decimal.Zero
	}
	return m.Project(d.Record)
}

// Sum adds a named metric over declarations.
func Sum(decls []model.Declaration, name string) decimal.Decimal {
	total := decimal.Zero
	for _, d := range decls {
		total = total.Add(Value(d, name))
	}
	return total
}
