package declaration

import (
	"strconv"
	"strings"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/period"
)

// typeCodes maps the numeric filing-type code (maTKhai) to its category.
var typeCodes = map[string]model.Category{
	"842": model.CategoryVAT,
	"844": model.CategoryVATInvestment,
	"950": model.CategoryCIT,
	"892": model.CategoryCIT,
	"402": model.CategoryFinancialStatements,
	"699": model.CategoryFinancialStatements,
	"683": model.CategoryFinancialStatements,
	"953": model.CategoryPITSettlement,
	"864": model.CategoryPITWithholding,
}

// Classify returns the category of a filing-type code.
func Classify(code string) (model.Category, bool) {
	c, ok := typeCodes[strings.TrimSpace(code)]
	return c, ok
}

// ParseKind reads the loaiTKhai header. "B" and "Bổ sung" mark a
// supplementary filing; anything else is treated as official.
func ParseKind(s string) model.FilingKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "bổ sung", "bo sung", "amended":
		return model.FilingAmended
	}
	return model.FilingOfficial
}

// ParseSequence reads the soLan header. Non-numeric values count as 0.
func ParseSequence(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FromRecord builds a Declaration from an ingested record. ok is false when
// the filing-type code is missing or unknown.
func FromRecord(rec *document.Record, source string) (model.Declaration, bool) {
	code := rec.Text(document.TagTypeCode, "")
	cat, ok := Classify(code)
	if !ok {
		return model.Declaration{}, false
	}
	p := period.Normalize(rec.Text(document.TagPeriod, ""), rec.Text(document.TagPeriodCycle, ""))
	if p == "" {
		p = model.UnknownPeriod
	}
	return model.Declaration{
		Category:     cat,
		Code:         strings.TrimSpace(code),
		Period:       p,
		TaxID:        rec.Text(document.TagTaxID, ""),
		TaxpayerName: rec.Text(document.TagTaxpayerName, ""),
		Kind:         ParseKind(rec.Text(document.TagFilingKind, "")),
		Sequence:     ParseSequence(rec.Text(document.TagFilingSequence, "")),
		Source:       source,
		Record:       rec,
	}, true
}
