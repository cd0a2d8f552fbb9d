package model

// Category is the semantic grouping of a tax form type.
type Category string

const (
	CategoryVAT                 Category = "vat"
	CategoryVATInvestment       Category = "vat-investment"
	CategoryCIT                 Category = "cit"
	CategoryFinancialStatements Category = "financial-statements"
	CategoryPITSettlement       Category = "pit-settlement"
	CategoryPITWithholding      Category = "pit-withholding"
)

var categoryForms = map[Category]string{
	CategoryVAT:                 "01/GTGT",
	CategoryVATInvestment:       "02/GTGT",
	CategoryCIT:                 "03/TNDN",
	CategoryFinancialStatements: "BCTC",
	CategoryPITSettlement:       "05/QTT-TNCN",
	CategoryPITWithholding:      "05/KK-TNCN",
}

// Form returns the official form code, e.g. "01/GTGT".
func (c Category) Form() string {
	return categoryForms[c]
}

// IsVAT reports whether the category is one of the value-added tax forms.
func (c Category) IsVAT() bool {
	return c == CategoryVAT || c == CategoryVATInvestment
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryVAT,
		CategoryVATInvestment,
		CategoryCIT,
		CategoryFinancialStatements,
		CategoryPITSettlement,
		CategoryPITWithholding,
	}
}
