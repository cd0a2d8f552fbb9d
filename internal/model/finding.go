package model

import (
	"github.com/shopspring/decimal"
)

// Status is the outcome of one reconciliation check.
type Status string

const (
	StatusMatch            Status = "Match"
	StatusOK               Status = "OK"
	StatusWarning          Status = "Warning"
	StatusInsufficientData Status = "InsufficientData"
	StatusInformational    Status = "Informational"
)

// IsIssue reports whether the status needs an explanation from the taxpayer.
func (s Status) IsIssue() bool {
	return s == StatusWarning
}

// NotAvailable is the rendering of a missing figure or difference.
const NotAvailable = "N/A"

// Figure is one labelled side of a comparison.
type Figure struct {
	Value decimal.Decimal
	Label string
	Valid bool
}

// Amount returns a present figure.
func Amount(v decimal.Decimal, label string) Figure {
	return Figure{Value: v, Label: label, Valid: true}
}

// Missing returns an absent figure with an optional explanation label.
func Missing(label string) Figure {
	return Figure{Label: label}
}

// String renders "1,000 (label)", or "N/A" when absent.
func (f Figure) String() string {
	if !f.Valid {
		if f.Label != "" {
			return f.Label
		}
		return NotAvailable
	}
	s := FormatAmount(f.Value)
	if f.Label != "" {
		s += " (" + f.Label + ")"
	}
	return s
}

// Finding is one reconciliation result.
type Finding struct {
	Rule       string
	Topic      string
	A          Figure
	B          Figure
	Difference string
	Status     Status
	Suggestion string
}

// Issues returns the findings whose status is Warning, in order.
func Issues(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Status.IsIssue() {
			out = append(out, f)
		}
	}
	return out
}
