// Package report renders analysis results for the terminal and exports them
// as CSV tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cleared-dev/taxaudit/internal/analysis"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// Column indices in the findings CSV.
const (
	findingNumFields = 7
	colRule          = 0
	colTopic         = 1
	colA             = 2
	colB             = 3
	colDifference    = 4
	colStatus        = 5
	colSuggestion    = 6
)

// FindingsHeader is the header line of the findings CSV.
const FindingsHeader = "rule,topic,a,b,difference,status,suggestion"

// MismatchesHeader is the header line of the line-total mismatch CSV.
const MismatchesHeader = "line,invoice,date,item,quantity,unit_price,stated,computed,difference"

// MarshalFinding converts a Finding to a CSV record.
func MarshalFinding(f model.Finding) []string {
	rec := make([]string, findingNumFields)
	rec[colRule] = f.Rule
	rec[colTopic] = f.Topic
	rec[colA] = f.A.String()
	rec[colB] = f.B.String()
	rec[colDifference] = f.Difference
	rec[colStatus] = string(f.Status)
	rec[colSuggestion] = f.Suggestion
	return rec
}

// WriteFindings writes the findings CSV with its header.
func WriteFindings(w io.Writer, findings []model.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(FindingsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, f := range findings {
		if err := cw.Write(MarshalFinding(f)); err != nil {
			return fmt.Errorf("writing finding %s: %w", f.Rule, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalSummaryRow converts a summary row to a CSV record. Amounts are
// plain decimals so the file stays machine-readable.
func MarshalSummaryRow(t *model.SummaryTable, r model.SummaryRow) []string {
	rec := []string{r.Metric, r.Label}
	for _, v := range r.Values {
		rec = append(rec, v.String())
	}
	if t.HasTotal {
		rec = append(rec, r.Total.String())
	}
	return rec
}

// WriteSummary writes one summary table: metric, label, one column per
// period and the total when the table has one.
func WriteSummary(w io.Writer, t *model.SummaryTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"metric", "label"}, t.Periods...)
	if t.HasTotal {
		header = append(header, "total")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(MarshalSummaryRow(t, r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Metric, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalDetailRow converts a catalog line to a CSV record.
func MarshalDetailRow(r model.DetailRow) []string {
	rec := []string{r.Code, r.Label}
	for _, v := range r.Values {
		rec = append(rec, v.String())
	}
	return append(rec, r.Text...)
}

// WriteDetail writes one detail table: code, label and its value columns.
func WriteDetail(w io.Writer, t *model.DetailTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"code", "label"}, t.Columns...)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(MarshalDetailRow(r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMismatch converts a line-total mismatch to a CSV record.
func MarshalMismatch(m ledger.Mismatch) []string {
	return []string{
		strconv.Itoa(m.Line), m.Invoice, m.Date, m.Item,
		m.Quantity.String(), m.UnitPrice.String(),
		m.Stated.String(), m.Computed.String(), m.Difference().String(),
	}
}

// WriteMismatches writes the line-total mismatch CSV with its header.
func WriteMismatches(w io.Writer, mismatches []ledger.Mismatch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(MismatchesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, m := range mismatches {
		if err := cw.Write(MarshalMismatch(m)); err != nil {
			return fmt.Errorf("writing mismatch line %d: %w", m.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes every non-empty table of res into dir and returns the paths
// written, findings first.
func Export(dir string, res *analysis.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write("findings.csv", func(w io.Writer) error { return WriteFindings(w, res.Findings) }); err != nil {
		return written, err
	}
	for _, t := range res.Summaries.All() {
		if t.Empty() {
			continue
		}
		if err := write("summary-"+string(t.Category)+".csv", func(w io.Writer) error { return WriteSummary(w, t) }); err != nil {
			return written, err
		}
	}
	for _, d := range namedDetails(res) {
		if d.table.Empty() {
			continue
		}
		if err := write("detail-"+d.name+".csv", func(w io.Writer) error { return WriteDetail(w, d.table) }); err != nil {
			return written, err
		}
	}
	if res.Sales != nil && len(res.Sales.Mismatches) > 0 {
		if err := write("sales-mismatches.csv", func(w io.Writer) error { return WriteMismatches(w, res.Sales.Mismatches) }); err != nil {
			return written, err
		}
	}
	return written, nil
}

type namedDetail struct {
	name  string
	table *model.DetailTable
}

func namedDetails(res *analysis.Result) []namedDetail {
	d := res.Details
	return []namedDetail{
		{"vat", d.VAT},
		{"cit-main", d.CITMainForm},
		{"cit-appendix", d.CITAppendix},
		{"balance-sheet", d.BalanceSheet},
		{"income-statement", d.IncomeStatement},
		{"trial-balance", d.TrialBalance},
		{"pit-settlement", d.PITSettlement},
		{"pit-employees", d.PITEmployees},
	}
}
