package ledger

import (
	"github.com/cleared-dev/taxaudit/internal/model"
)

// PurchaseParser reads the purchase invoice register. Two portal layouts
// exist and are told apart by width; both keep the amounts in the same
// columns.
type PurchaseParser struct{}

const (
	purchaseSkipRows    = 5
	purchaseWideFields  = 21
	purchaseNarrowField = 19
	purchaseColPreTax   = 13
	purchaseColTax      = 14
	purchaseColDiscount = 15
	purchaseColPayment  = 16

	// Purchase layout names.
	VariantWide   = "data-1"
	VariantNarrow = "mtt1"
)

// Format returns the parser name.
func (p *PurchaseParser) Format() string { return FormatPurchase }

// Variant detects the layout of a purchase register from its width. The
// column titles sit in the preamble, so a trailing column left blank in every
// invoice still counts.
func Variant(rows [][]string) (string, error) {
	switch w := width(rows); {
	case w >= purchaseWideFields:
		return VariantWide, nil
	case w >= purchaseNarrowField:
		return VariantNarrow, nil
	default:
		return "", unknownWidth("purchase ledger", w, "19 or 21")
	}
}

// Parse totals every data row regardless of invoice status.
func (p *PurchaseParser) Parse(rows [][]string) (*Result, error) {
	variant, err := Variant(rows)
	if err != nil {
		return nil, err
	}

	var totals model.InvoiceTotals
	for _, row := range after(rows, purchaseSkipRows) {
		if blank(row) {
			continue
		}
		totals = totals.Add(model.InvoiceTotals{
			PreTax:   amount(row, purchaseColPreTax),
			Tax:      amount(row, purchaseColTax),
			Discount: amount(row, purchaseColDiscount),
			Payment:  amount(row, purchaseColPayment),
			Rows:     1,
		})
	}
	return &Result{Format: FormatPurchase, Variants: []string{variant}, Totals: totals}, nil
}
