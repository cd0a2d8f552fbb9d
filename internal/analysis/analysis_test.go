package analysis

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxaudit/internal/declaration"
	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/rules"
)

// filing renders a declaration with the given header and body.
func filing(code, period, kind, seq, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<HSoThueDTu>
  <HSoKhaiThue>
    <TTinChung>
      <TTinTKhaiThue>
        <TKhaiThue><maTKhai>%s</maTKhai><kyKKhai>%s</kyKKhai><loaiTKhai>%s</loaiTKhai><soLan>%s</soLan></TKhaiThue>
        <NNT><mst>0101234567</mst><tenNNT>Công ty TNHH Mẫu</tenNNT></NNT>
      </TTinTKhaiThue>
    </TTinChung>
    <CTieuTKhaiChinh>%s</CTieuTKhaiChinh>
  </HSoKhaiThue>
</HSoThueDTu>`, code, period, kind, seq, body)
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findings(res *Result, id string) []model.Finding {
	var out []model.Finding
	for _, f := range res.Findings {
		if f.Rule == id {
			out = append(out, f)
		}
	}
	return out
}

func TestRun_RevenueMismatch(t *testing.T) {
	dir := t.TempDir()
	in := Input{
		Documents: []string{
			write(t, dir, "vat.xml", filing("842", "12/2024", "C", "0", "<ct26>480</ct26><ct40>48</ct40>")),
			write(t, dir, "cit.xml", filing("892", "2024", "C", "0", "<ct04>450</ct04><ct19>50</ct19>")),
		},
	}

	res := Run(context.Background(), in)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Declarations, 2)
	assert.Empty(t, res.Problems)

	got := findings(res, "revenue-vat-cit")
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusWarning, got[0].Status)
	assert.Equal(t, "20", got[0].Difference)

	total, ok := res.Summaries.VAT.Total(metrics.VATTaxableRevenue)
	require.True(t, ok)
	assert.Equal(t, "480", total.String())

	name, taxID := res.Taxpayer()
	assert.Equal(t, "Công ty TNHH Mẫu", name)
	assert.Equal(t, "0101234567", taxID)
}

func TestRun_AmendedFilingWins(t *testing.T) {
	dir := t.TempDir()
	in := Input{Documents: []string{
		write(t, dir, "a.xml", filing("842", "01/2024", "C", "0", "<ct26>100</ct26>")),
		write(t, dir, "b.xml", filing("842", "01/2024", "B", "1", "<ct26>150</ct26>")),
		write(t, dir, "c.xml", filing("999", "01/2024", "C", "0", "<ct26>1</ct26>")),
	}}

	res := Run(context.Background(), in)
	require.Len(t, res.Declarations, 1)
	assert.Equal(t, "150", res.Declarations[0].Record.Text("ct26", ""))

	require.Len(t, res.Skipped, 2)
	reasons := []declaration.SkipReason{res.Skipped[0].Reason, res.Skipped[1].Reason}
	assert.ElementsMatch(t, []declaration.SkipReason{declaration.SkipSuperseded, declaration.SkipUnknownCode}, reasons)
}

func TestRun_MalformedDocumentIsAProblem(t *testing.T) {
	dir := t.TempDir()
	bad := write(t, dir, "bad.xml", "<HSoThueDTu><maTKhai>842")
	in := Input{Documents: []string{
		bad,
		write(t, dir, "vat.xml", filing("842", "03/2024", "C", "0", "<ct26>10</ct26>")),
	}}

	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())
	res := Run(ctx, in)

	require.Len(t, res.Declarations, 1)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, bad, res.Problems[0].Source)
	assert.Contains(t, logs.String(), `"file":"`+bad+`"`)
	assert.Contains(t, logs.String(), `"run_id":"`+res.RunID+`"`)
}

func TestRun_NoInput(t *testing.T) {
	res := Run(context.Background(), Input{})
	assert.Empty(t, res.Declarations)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, model.StatusInformational, res.Findings[0].Status)
}

func TestRun_FinancialStatementRules(t *testing.T) {
	dir := t.TempDir()
	fs := filing("699", "2024", "C", "0", `
      <CDKT><SoCuoiNam><ct110>2000000000</ct110></SoCuoiNam></CDKT>
      <KQKD><NamNay><ct23>50000000</ct23></NamNay></KQKD>`)
	in := Input{
		Documents: []string{write(t, dir, "fs.xml", fs)},
		Standard:  model.StandardCircular133,
	}

	res := Run(context.Background(), in)
	got := findings(res, "a.cash-interest")
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusWarning, got[0].Status)
	assert.NotNil(t, res.Details.BalanceSheet)

	in.Thresholds = rules.DefaultThresholds()
	in.Thresholds.CashInterest = in.Thresholds.CashInterest.Mul(in.Thresholds.CashInterest)
	got = findings(Run(context.Background(), in), "a.cash-interest")
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusOK, got[0].Status)
}

func purchaseCSV(preTax, tax string) string {
	var b strings.Builder
	for range 5 {
		b.WriteString("BẢNG KÊ\n")
	}
	cells := make([]string, 21)
	cells[13], cells[14], cells[16] = preTax, tax, preTax
	b.WriteString(strings.Join(cells, ",") + "\n")
	return b.String()
}

func TestRun_Ledgers(t *testing.T) {
	dir := t.TempDir()
	in := Input{
		Documents: []string{
			write(t, dir, "vat.xml", filing("842", "01/2024", "C", "0", "<ct23>1000</ct23><ct24>100</ct24><ct25>100</ct25>")),
		},
		PurchaseFiles: []string{
			write(t, dir, "p1.csv", purchaseCSV("600", "60")),
			write(t, dir, "p2.csv", purchaseCSV("400", "40")),
			write(t, dir, "p3.csv", "only,three,columns\n"),
		},
		SalesFiles:  []string{write(t, dir, "s.csv", "x\n")},
		SalesFormat: "fancy",
	}

	res := Run(context.Background(), in)
	require.NotNil(t, res.Purchase)
	assert.Equal(t, "1000", res.Purchase.Totals.PreTax.String())
	assert.Nil(t, res.Sales)

	require.Len(t, res.Problems, 2)
	for _, p := range res.Problems {
		assert.ErrorIs(t, p, ledger.ErrUnknownSchema)
	}

	got := findings(res, "input-vat")
	require.Len(t, got, 3)
	for _, f := range got {
		assert.NotEqual(t, model.StatusWarning, f.Status, f.Topic)
	}
}

func TestRun_Notes(t *testing.T) {
	dir := t.TempDir()
	in := Input{NotesFiles: []string{
		write(t, dir, "a.txt", "  Ghi chú 1 \n"),
		write(t, dir, "b.xls", "binary"),
		write(t, dir, "c.md", "Ghi chú 2"),
	}}
	res := Run(context.Background(), in)
	assert.Equal(t, "Ghi chú 1\n\nGhi chú 2", res.Notes)
	require.Len(t, res.Problems, 1)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	write(t, root, "declarations/b.xml", "<a/>")
	write(t, root, "declarations/A.XML", "<a/>")
	write(t, root, "declarations/readme.txt", "")
	write(t, root, "ledgers/sales/s.xlsx", "")
	write(t, root, "ledgers/purchase/p.csv", "")
	write(t, root, "notes/n.docx", "")
	write(t, root, "notes/~$n.docx", "")

	in, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "declarations", "A.XML"),
		filepath.Join(root, "declarations", "b.xml"),
	}, in.Documents)
	assert.Equal(t, []string{filepath.Join(root, "ledgers", "sales", "s.xlsx")}, in.SalesFiles)
	assert.Equal(t, []string{filepath.Join(root, "ledgers", "purchase", "p.csv")}, in.PurchaseFiles)
	assert.Equal(t, []string{filepath.Join(root, "notes", "n.docx")}, in.NotesFiles)
}

func TestDiscover_EmptyWorkspace(t *testing.T) {
	in, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, in.Documents)
	assert.Empty(t, in.SalesFiles)
}

func TestProblemUnwraps(t *testing.T) {
	p := Problem{Source: "x.xml", Err: document.ErrEmptyDocument}
	assert.ErrorIs(t, p, document.ErrEmptyDocument)
	assert.Equal(t, "x.xml: "+document.ErrEmptyDocument.Error(), p.Error())
}
