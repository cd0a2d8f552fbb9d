// Package ledger reads invoice registers exported from the e-invoice portal
// and reduces them to the totals the reconciliation rules consume.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// ErrUnknownSchema is returned for a table whose shape matches no register
// layout.
var ErrUnknownSchema = errors.New("unrecognized ledger schema")

// Register layouts.
const (
	FormatSummary  = "summary"
	FormatDetailed = "detailed"
	FormatPurchase = "purchase"
)

// Parser reduces the rows of one register file.
type Parser interface {
	Parse(rows [][]string) (*Result, error)
	Format() string
}

// Result is the reduction of one or more register files.
type Result struct {
	Format     string
	Variants   []string // purchase layouts detected, one per file
	Sources    []string
	Totals     model.InvoiceTotals
	Mismatches []Mismatch
}

func (r *Result) merge(o *Result) {
	r.Variants = append(r.Variants, o.Variants...)
	r.Sources = append(r.Sources, o.Sources...)
	r.Totals = r.Totals.Add(o.Totals)
	r.Mismatches = append(r.Mismatches, o.Mismatches...)
}

// FileError ties a per-file failure to its path.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e FileError) Unwrap() error { return e.Err }

// Load parses every file with p and concatenates the results. Files that
// cannot be read or whose layout is not recognized are skipped and reported;
// the result is nil when no file could be used.
func Load(ctx context.Context, p Parser, paths []string) (*Result, []FileError) {
	logger := zerolog.Ctx(ctx)

	var out *Result
	var problems []FileError
	for _, path := range paths {
		res, err := LoadFile(p, path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Str("format", p.Format()).Msg("skipping ledger")
			problems = append(problems, FileError{Path: path, Err: err})
			continue
		}
		logger.Debug().Str("file", path).Str("format", p.Format()).Int("rows", res.Totals.Rows).Msg("ledger loaded")
		if out == nil {
			out = &Result{Format: p.Format()}
		}
		out.merge(res)
	}
	return out, problems
}

// LoadFile parses a single register file.
func LoadFile(p Parser, path string) (*Result, error) {
	rows, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	res, err := p.Parse(rows)
	if err != nil {
		return nil, err
	}
	res.Sources = []string{path}
	return res, nil
}

// Statuses whose invoices count toward sales totals.
var countedStatuses = map[string]bool{
	"Hóa đơn mới":              true,
	"Hóa đơn thay thế":         true,
	"Hóa đơn điều chỉnh":       true,
	"Hóa đơn đã bị điều chỉnh": true,
}

// Counted reports whether an invoice with status s counts toward sales
// totals.
func Counted(s string) bool {
	return countedStatuses[strings.TrimSpace(s)]
}

func amount(row []string, i int) decimal.Decimal {
	return document.ParseNumberOr(cell(row, i), decimal.Zero)
}

// convert applies the exchange rate to an amount in a foreign currency. A
// blank currency is taken as VND.
func convert(v decimal.Decimal, currency string, rate decimal.Decimal) decimal.Decimal {
	if currency == "" || strings.EqualFold(currency, "VND") {
		return v
	}
	return v.Mul(rate)
}

func unknownWidth(layout string, got int, want string) error {
	return fmt.Errorf("%w: %s has %d columns, want %s", ErrUnknownSchema, layout, got, want)
}
