package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/model"
)

// SummarySalesParser reads the invoice-level sales register.
type SummarySalesParser struct{}

const (
	summaryNumFields   = 21
	summarySkipRows    = 6 // preamble and column header
	summaryColPreTax   = 12
	summaryColTax      = 13
	summaryColDiscount = 14
	summaryColPayment  = 16
	summaryColCurrency = 17
	summaryColRate     = 18
	summaryColStatus   = 19
)

const (
	detailedNumFields   = 20
	detailedSkipRows    = 1
	detailedColInvoice  = 1
	detailedColDate     = 2
	detailedColItem     = 6
	detailedColQuantity = 8
	detailedColPrice    = 9
	detailedColDiscount = 10
	detailedColTotal    = 12 // column 11 is always blank
	detailedColRate     = 13
	detailedColCurrency = 14
	detailedColFXRate   = 15
	detailedColStatus   = 16
)

// Format returns the parser name.
func (p *SummarySalesParser) Format() string { return FormatSummary }

// Parse totals the rows whose status counts, converting foreign-currency
// amounts by the row's exchange rate.
func (p *SummarySalesParser) Parse(rows [][]string) (*Result, error) {
	data := after(rows, summarySkipRows)
	if w := width(rows); len(data) > 0 && w != summaryNumFields {
		return nil, unknownWidth("summary sales ledger", w, "21")
	}

	var totals model.InvoiceTotals
	for _, row := range data {
		if blank(row) || !Counted(cell(row, summaryColStatus)) {
			continue
		}
		currency, rate := cell(row, summaryColCurrency), amount(row, summaryColRate)
		totals = totals.Add(model.InvoiceTotals{
			PreTax:   convert(amount(row, summaryColPreTax), currency, rate),
			Tax:      convert(amount(row, summaryColTax), currency, rate),
			Discount: convert(amount(row, summaryColDiscount), currency, rate),
			Payment:  convert(amount(row, summaryColPayment), currency, rate),
			Rows:     1,
		})
	}
	return &Result{Format: FormatSummary, Totals: totals}, nil
}

// DefaultLineTolerance is the slack allowed between a stated line total and
// quantity × unit price.
var DefaultLineTolerance = decimal.RequireFromString("0.01")

// DetailedSalesParser reads the line-level sales register. Besides totals it
// reports every line whose stated total disagrees with quantity × unit price.
type DetailedSalesParser struct {
	Tolerance decimal.Decimal
}

// Mismatch is a register line whose stated total is off.
type Mismatch struct {
	Line      int // 1-based row in the file
	Invoice   string
	Date      string
	Item      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Stated    decimal.Decimal
	Computed  decimal.Decimal
}

// Difference is Stated − Computed.
func (m Mismatch) Difference() decimal.Decimal {
	return m.Stated.Sub(m.Computed)
}

// Format returns the parser name.
func (p *DetailedSalesParser) Format() string { return FormatDetailed }

// Parse checks every line and totals the lines whose status counts. Pre-tax
// is line total minus discount, tax is pre-tax × rate and payment is their
// sum.
func (p *DetailedSalesParser) Parse(rows [][]string) (*Result, error) {
	data := after(rows, detailedSkipRows)
	if w := width(rows); len(data) > 0 && w != detailedNumFields {
		return nil, unknownWidth("detailed sales ledger", w, "20")
	}

	res := &Result{Format: FormatDetailed}
	for i, row := range data {
		if blank(row) {
			continue
		}
		qty, price, stated := amount(row, detailedColQuantity), amount(row, detailedColPrice), amount(row, detailedColTotal)
		if computed := qty.Mul(price); stated.Sub(computed).Abs().GreaterThan(p.Tolerance) {
			res.Mismatches = append(res.Mismatches, Mismatch{
				Line:      detailedSkipRows + i + 1,
				Invoice:   cell(row, detailedColInvoice),
				Date:      cell(row, detailedColDate),
				Item:      cell(row, detailedColItem),
				Quantity:  qty,
				UnitPrice: price,
				Stated:    stated,
				Computed:  computed,
			})
		}

		if !Counted(cell(row, detailedColStatus)) {
			continue
		}
		currency, fx := cell(row, detailedColCurrency), amount(row, detailedColFXRate)
		discount := amount(row, detailedColDiscount)
		preTax := stated.Sub(discount)
		tax := preTax.Mul(taxRate(cell(row, detailedColRate)))

		preTax, tax = convert(preTax, currency, fx), convert(tax, currency, fx)
		res.Totals = res.Totals.Add(model.InvoiceTotals{
			PreTax:   preTax,
			Tax:      tax,
			Discount: convert(discount, currency, fx),
			Payment:  preTax.Add(tax),
			Rows:     1,
		})
	}
	return res, nil
}

var hundred = decimal.NewFromInt(100)

// taxRate reads a rate cell as a fraction: "10%" and "0.1" are both 0.10.
// Non-numeric rates such as "KCT" are zero.
func taxRate(s string) decimal.Decimal {
	if v, ok := strings.CutSuffix(s, "%"); ok {
		return amountOf(v).Div(hundred)
	}
	return amountOf(s)
}

func amountOf(s string) decimal.Decimal {
	return amount([]string{s}, 0)
}
