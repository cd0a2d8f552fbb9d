package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxaudit/internal/analysis"
	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
)

func sampleFindings() []model.Finding {
	return []model.Finding{
		{
			Rule:       "revenue-vat-cit",
			Topic:      "VAT revenue vs CIT revenue",
			A:          model.Amount(decimal.NewFromInt(500), "CIT settlement"),
			B:          model.Amount(decimal.NewFromInt(480), "VAT returns"),
			Difference: "20",
			Status:     model.StatusWarning,
			Suggestion: "Reconcile, then explain.",
		},
		{
			Rule:       "pit-withholding",
			Topic:      "PIT withheld",
			A:          model.Missing(""),
			B:          model.Missing(""),
			Difference: model.NotAvailable,
			Status:     model.StatusInsufficientData,
			Suggestion: "Upload both.",
		},
	}
}

func sampleResult() *analysis.Result {
	rec := document.NewRecord()
	rec.Set("ct26", "1000")
	rec.Set("ct25", "100")
	rec.Set("ct40", "50")
	decls := []model.Declaration{{
		Category:     model.CategoryVAT,
		Code:         "842",
		Period:       "01/2024",
		TaxID:        "0101234567",
		TaxpayerName: "Công ty Mẫu",
		Kind:         model.FilingOfficial,
		Source:       "vat.xml",
		Record:       rec,
	}}
	return &analysis.Result{
		RunID:        "run-1",
		Standard:     model.StandardCircular133,
		Declarations: decls,
		Summaries:    metrics.Summarize(decls),
		Details:      metrics.Detail(decls, nil),
		Sales: &ledger.Result{
			Format: ledger.FormatDetailed,
			Totals: model.InvoiceTotals{PreTax: decimal.NewFromInt(1000), Rows: 1},
			Mismatches: []ledger.Mismatch{{
				Line: 2, Invoice: "0000123", Item: "Hàng A",
				Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1000),
				Stated: decimal.NewFromInt(9000), Computed: decimal.NewFromInt(10000),
			}},
		},
		Problems: []analysis.Problem{{Source: "bad.xml", Err: errors.New("parsing document: unexpected EOF")}},
		Findings: sampleFindings(),
	}
}

func TestMarshalFinding(t *testing.T) {
	rec := MarshalFinding(sampleFindings()[0])
	assert.Len(t, rec, len(strings.Split(FindingsHeader, ",")))
	assert.Equal(t, []string{
		"revenue-vat-cit", "VAT revenue vs CIT revenue", "500 (CIT settlement)", "480 (VAT returns)",
		"20", "Warning", "Reconcile, then explain.",
	}, rec)
}

func TestWriteFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(&buf, sampleFindings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, strings.Split(FindingsHeader, ","), rows[0])
	assert.Equal(t, "Reconcile, then explain.", rows[1][colSuggestion])
	assert.Equal(t, "N/A", rows[2][colA])
	assert.Equal(t, "InsufficientData", rows[2][colStatus])
}

func TestWriteSummary(t *testing.T) {
	st := &model.SummaryTable{
		Periods:  []string{"01/2024", "02/2024"},
		HasTotal: true,
		Rows: []model.SummaryRow{{
			Metric: "vat.payable",
			Label:  "VAT payable",
			Values: []decimal.Decimal{decimal.RequireFromString("1234.5"), decimal.NewFromInt(-2)},
			Total:  decimal.RequireFromString("1232.5"),
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, st))
	assert.Equal(t, "metric,label,01/2024,02/2024,total\nvat.payable,VAT payable,1234.5,-2,1232.5\n", buf.String())

	st.HasTotal = false
	buf.Reset()
	require.NoError(t, WriteSummary(&buf, st))
	assert.Equal(t, "metric,label,01/2024,02/2024\nvat.payable,VAT payable,1234.5,-2\n", buf.String())
}

func TestWriteDetail(t *testing.T) {
	dt := &model.DetailTable{
		Columns: []string{"Name", "Tax ID"},
		Rows: []model.DetailRow{
			{Code: "1", Label: "Employee 1", Text: []string{"Nguyễn Văn A", "123"}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDetail(&buf, dt))
	assert.Equal(t, "code,label,Name,Tax ID\n1,Employee 1,Nguyễn Văn A,123\n", buf.String())
}

func TestWriteMismatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMismatches(&buf, sampleResult().Sales.Mismatches))
	assert.Equal(t, MismatchesHeader+"\n2,0000123,,Hàng A,10,1000,9000,10000,-1000\n", buf.String())
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	paths, err := Export(dir, sampleResult())
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
		_, err := os.Stat(p)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"findings.csv", "summary-vat.csv", "detail-vat.csv", "sales-mismatches.csv"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "summary-vat.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "metric,label,01/2024,total\n"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), Options{}))
	out := buf.String()

	for _, want := range []string{
		"Tax audit reconciliation",
		"Công ty Mẫu",
		"0101234567",
		"Circular 133",
		"run-1",
		"Skipped files",
		"bad.xml",
		"Declarations",
		"01/GTGT",
		"1,000",
		"Invoice ledgers",
		"1 sales line(s)",
		"VAT revenue vs CIT revenue",
		"Warning",
		"InsufficientData",
		"2 findings, 1 warnings",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, sampleResult().Details.VAT.Title, "detail catalogs are opt-in")
}

func TestRender_Details(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, Options{Details: true}))
	assert.Contains(t, buf.String(), res.Details.VAT.Title)
}

func TestRenderCommentary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCommentary(&buf, "  - Doanh thu ổn định\n", nil))
	assert.Contains(t, buf.String(), "Commentary")
	assert.Contains(t, buf.String(), "- Doanh thu ổn định\n")

	buf.Reset()
	require.NoError(t, RenderCommentary(&buf, "", errors.New("timeout")))
	assert.Contains(t, buf.String(), "Commentary unavailable: timeout")
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, okStyle.GetForeground(), StatusStyle(model.StatusMatch).GetForeground())
	assert.Equal(t, okStyle.GetForeground(), StatusStyle(model.StatusOK).GetForeground())
	assert.Equal(t, warningStyle.GetForeground(), StatusStyle(model.StatusWarning).GetForeground())
	assert.Equal(t, infoStyle.GetForeground(), StatusStyle(model.StatusInformational).GetForeground())
}
