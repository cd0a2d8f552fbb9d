package model

import "github.com/shopspring/decimal"

// InvoiceTotals are the aggregate amounts of an invoice register.
type InvoiceTotals struct {
	PreTax   decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Payment  decimal.Decimal
	Rows     int
}

// Add returns the element-wise sum.
func (t InvoiceTotals) Add(o InvoiceTotals) InvoiceTotals {
	return InvoiceTotals{
		PreTax:   t.PreTax.Add(o.PreTax),
		Tax:      t.Tax.Add(o.Tax),
		Discount: t.Discount.Add(o.Discount),
		Payment:  t.Payment.Add(o.Payment),
		Rows:     t.Rows + o.Rows,
	}
}
