package rules

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// exact is the tolerance of declaration-vs-declaration comparisons.
var exact = decimal.Zero

// compare builds a finding for A − B. It is a Warning when |A − B| exceeds
// tol and ok otherwise.
func compare(id, topic string, a, b model.Figure, tol decimal.Decimal, ok model.Status, suggestion string) model.Finding {
	diff := a.Value.Sub(b.Value)
	status := ok
	if diff.Abs().GreaterThan(tol) {
		status = model.StatusWarning
	}
	return model.Finding{
		Rule:       id,
		Topic:      topic,
		A:          a,
		B:          b,
		Difference: model.FormatAmount(diff),
		Status:     status,
		Suggestion: suggestion,
	}
}

// bySign picks the hint matching the sign of d.
func bySign(d decimal.Decimal, positive, negative, zero string) string {
	switch d.Sign() {
	case 1:
		return positive
	case -1:
		return negative
	}
	return zero
}

// flag builds a finding without a computed difference.
func flag(id, topic string, a, b model.Figure, status model.Status, suggestion string) model.Finding {
	return model.Finding{
		Rule:       id,
		Topic:      topic,
		A:          a,
		B:          b,
		Difference: model.NotAvailable,
		Status:     status,
		Suggestion: suggestion,
	}
}

// field is a record key and its display label.
type field struct {
	Key   string
	Label string
}

func (f field) figure(rec *document.Record) model.Figure {
	if f.Key == "" {
		return model.Missing("")
	}
	return model.Amount(rec.Amount(f.Key), f.Label)
}

// sum adds the amounts of several keys under one label.
func sum(rec *document.Record, label string, keys ...string) model.Figure {
	return model.Amount(rec.SumAmounts(keys...), label)
}
