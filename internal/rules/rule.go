// Package rules evaluates the reconciliation catalog over resolved
// declarations, summary tables and ledger totals.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// Requirement is a set of inputs a rule needs before it can run.
type Requirement uint

const (
	NeedVATSummary Requirement = 1 << iota
	NeedVATForm
	NeedCIT
	NeedFinancialStatements
	NeedPITSettlement
	NeedPITWithholding
	NeedSalesLedger
	NeedPurchaseLedger
)

// Rule is one entry of a rule registry. When Requires is not met the driver
// emits a single InsufficientData finding carrying Missing and skips Check.
type Rule struct {
	ID       string
	Topic    string
	Requires Requirement
	Missing  string
	Check    func(c *Context) []model.Finding
}

// Thresholds are the tunable limits used by the catalog.
type Thresholds struct {
	CashInterest             decimal.Decimal // cash above which borrowing looks odd
	LedgerTolerance          decimal.Decimal // declaration vs ledger rounding slack
	VariancePercent          decimal.Decimal // year-over-year change limit
	InventoryRevenueMultiple decimal.Decimal // closing inventory vs revenue
}

// DefaultThresholds returns the standard limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CashInterest:             decimal.NewFromInt(1_000_000_000),
		LedgerTolerance:          decimal.NewFromInt(1),
		VariancePercent:          decimal.NewFromInt(30),
		InventoryRevenueMultiple: decimal.NewFromInt(2),
	}
}

// Input is everything the catalog reads.
type Input struct {
	Declarations []model.Declaration
	Summaries    metrics.Summaries
	Standard     model.Standard
	Sales        *model.InvoiceTotals // nil when no sales ledger was supplied
	Purchase     *model.InvoiceTotals // nil when no purchase ledger was supplied
	Thresholds   Thresholds
}

// Context is the per-run view rules evaluate against.
type Context struct {
	Input

	vatForms []model.Declaration // form 01/GTGT only

	cit, fs, pitSettlement          model.Declaration
	hasCIT, hasFS, hasPITSettlement bool
}

func newContext(in Input) *Context {
	c := &Context{Input: in}
	c.vatForms = model.OfCategory(in.Declarations, model.CategoryVAT)
	c.cit, c.hasCIT = metrics.Latest(in.Declarations, model.CategoryCIT)
	c.fs, c.hasFS = metrics.Latest(in.Declarations, model.CategoryFinancialStatements)
	c.pitSettlement, c.hasPITSettlement = metrics.Latest(in.Declarations, model.CategoryPITSettlement)
	return c
}

// Has reports whether every input in r is available.
func (c *Context) Has(r Requirement) bool {
	avail := map[Requirement]bool{
		NeedVATSummary:          !c.Summaries.VAT.Empty(),
		NeedVATForm:             len(c.vatForms) > 0,
		NeedCIT:                 c.hasCIT,
		NeedFinancialStatements: c.hasFS,
		NeedPITSettlement:       c.hasPITSettlement,
		NeedPITWithholding:      !c.Summaries.PITWithholding.Empty(),
		NeedSalesLedger:         c.Sales != nil,
		NeedPurchaseLedger:      c.Purchase != nil,
	}
	for flag, ok := range avail {
		if r&flag != 0 && !ok {
			return false
		}
	}
	return true
}

// statements is the record of the latest financial statements.
func (c *Context) statements() *document.Record {
	return c.fs.Record
}

// Evaluate runs the cross-checks followed by the financial-statement rule
// set chosen by in.Standard. Findings come back in registry order.
func Evaluate(in Input) []model.Finding {
	if len(in.Declarations) == 0 && in.Sales == nil && in.Purchase == nil {
		return []model.Finding{{
			Rule:       "no-data",
			Topic:      "Analysis",
			A:          model.Missing(""),
			B:          model.Missing(""),
			Difference: model.NotAvailable,
			Status:     model.StatusInformational,
			Suggestion: "No declarations or ledgers were supplied.",
		}}
	}

	c := newContext(in)
	findings := run(c, CrossChecks())

	if !c.Has(NeedFinancialStatements) {
		return append(findings, insufficient("fs", "Financial statement analysis", "Upload the financial statements."))
	}
	switch in.Standard {
	case model.StandardCircular133:
		findings = append(findings, run(c, StandardA())...)
	case model.StandardCircular200:
		findings = append(findings, run(c, StandardB())...)
	default:
		findings = append(findings, insufficient("fs", "Financial statement analysis",
			"Select the accounting standard (TT133 or TT200) to reconcile the financial statements."))
	}
	return findings
}

func run(c *Context, registry []Rule) []model.Finding {
	var out []model.Finding
	for _, r := range registry {
		if !c.Has(r.Requires) {
			out = append(out, insufficient(r.ID, r.Topic, r.Missing))
			continue
		}
		out = append(out, r.Check(c)...)
	}
	return out
}

func insufficient(id, topic, suggestion string) model.Finding {
	return model.Finding{
		Rule:       id,
		Topic:      topic,
		A:          model.Missing(""),
		B:          model.Missing(""),
		Difference: model.NotAvailable,
		Status:     model.StatusInsufficientData,
		Suggestion: suggestion,
	}
}
