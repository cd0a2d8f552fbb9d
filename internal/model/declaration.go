package model

import "github.com/cleared-dev/taxaudit/internal/document"

// FilingKind distinguishes an original filing from a supplementary one.
type FilingKind string

const (
	FilingOfficial FilingKind = "official"
	FilingAmended  FilingKind = "amended"
)

// UnknownPeriod labels declarations whose period code is missing.
const UnknownPeriod = "unspecified"

// Declaration is one retained filing for a (category, period) pair. It is
// built once by the classifier and never mutated afterwards.
type Declaration struct {
	Category     Category
	Code         string // filing-type code, e.g. "842"
	Period       string
	TaxID        string
	TaxpayerName string
	Kind         FilingKind
	Sequence     int
	Source       string
	Record       *document.Record
}

// OfCategory returns the declarations in category c, preserving order.
func OfCategory(decls []Declaration, c Category) []Declaration {
	var out []Declaration
	for _, d := range decls {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// VAT returns the value-added tax declarations of either form.
func VAT(decls []Declaration) []Declaration {
	var out []Declaration
	for _, d := range decls {
		if d.Category.IsVAT() {
			out = append(out, d)
		}
	}
	return out
}
