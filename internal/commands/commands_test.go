package commands_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxaudit/internal/accounts"
	"github.com/cleared-dev/taxaudit/internal/commands"
	"github.com/cleared-dev/taxaudit/internal/config"
)

func runTaxaudit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func filing(code, period, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<HSoThueDTu>
  <HSoKhaiThue>
    <TTinChung>
      <TTinTKhaiThue>
        <TKhaiThue><maTKhai>%s</maTKhai><kyKKhai>%s</kyKKhai><loaiTKhai>C</loaiTKhai><soLan>0</soLan></TKhaiThue>
        <NNT><mst>0101234567</mst><tenNNT>Test Co</tenNNT></NNT>
      </TTinTKhaiThue>
    </TTinChung>
    <CTieuTKhaiChinh>%s</CTieuTKhaiChinh>
  </HSoKhaiThue>
</HSoThueDTu>`, code, period, body)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// workspace initializes dir and drops a VAT and a CIT declaration whose
// revenues differ by 20.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runTaxaudit(t, "init", dir, "--name", "Test Co")
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "declarations", "vat.xml"), filing("842", "12/2024", "<ct26>480</ct26><ct40>48</ct40>"))
	writeFile(t, filepath.Join(dir, "declarations", "cit.xml"), filing("892", "2024", "<ct04>450</ct04><ct19>50</ct19>"))
	return dir
}

func readFindings(t *testing.T, path string) map[string][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	byRule := make(map[string][]string)
	for _, r := range records[1:] {
		byRule[r[0]] = r
	}
	return byRule
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runTaxaudit(t, "init", dir, "--name", "Test Co")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized taxaudit workspace")

	expectedDirs := []string{
		"declarations",
		filepath.Join("ledgers", "sales"),
		filepath.Join("ledgers", "purchase"),
		"notes",
		"reports",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	chart, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, chart.All(), len(accounts.DefaultChart()))
	_, err = os.Stat(filepath.Join(dir, accounts.ChartPath))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runTaxaudit(t, "init", dir, "--name", "My Company", "--tax-id", "0312345678", "--standard", "tt200")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "My Company", cfg.Taxpayer.Name)
	assert.Equal(t, "0312345678", cfg.Taxpayer.TaxID)
	assert.Equal(t, "tt200", cfg.Analysis.AccountingStandard)
	assert.Equal(t, "summary", cfg.Analysis.SalesLedgerFormat)
}

func TestInit_RefusesExistingWorkspace(t *testing.T) {
	dir := t.TempDir()
	_, err := runTaxaudit(t, "init", dir)
	require.NoError(t, err)

	_, err = runTaxaudit(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_InvalidStandard(t *testing.T) {
	_, err := runTaxaudit(t, "init", t.TempDir(), "--standard", "ifrs")
	require.Error(t, err)
}

func TestAnalyze_Workspace(t *testing.T) {
	dir := workspace(t)
	reports := filepath.Join(dir, "reports")

	out, err := runTaxaudit(t, "analyze", dir, "--out", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "Findings")
	assert.Contains(t, out, "Wrote ")

	rows := readFindings(t, filepath.Join(reports, "findings.csv"))
	rev, ok := rows["revenue-vat-cit"]
	require.True(t, ok)
	assert.Equal(t, "20", rev[4])
	assert.Equal(t, "Warning", rev[5])

	_, err = os.Stat(filepath.Join(reports, "summary-vat.csv"))
	assert.NoError(t, err)
}

func TestAnalyze_ExplicitFilesReplaceDiscovered(t *testing.T) {
	dir := workspace(t)
	other := t.TempDir()
	cit := writeFile(t, filepath.Join(other, "cit.xml"), filing("892", "2024", "<ct04>430</ct04><ct19>50</ct19>"))
	reports := filepath.Join(other, "out")

	_, err := runTaxaudit(t, "analyze", dir,
		"--declaration", filepath.Join(dir, "declarations", "vat.xml"),
		"--declaration", cit,
		"--out", reports)
	require.NoError(t, err)

	rows := readFindings(t, filepath.Join(reports, "findings.csv"))
	assert.Equal(t, "0", rows["revenue-vat-cit"][4])
	assert.Equal(t, "Match", rows["revenue-vat-cit"][5])
}

func TestAnalyze_StandardFlagOverridesConfig(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "declarations", "fs.xml"),
		filing("699", "2024", "<CDKT><SoCuoiNam><ct110>100</ct110></SoCuoiNam></CDKT>"))
	reports := filepath.Join(dir, "reports")

	_, err := runTaxaudit(t, "analyze", dir, "--out", reports)
	require.NoError(t, err)
	rows := readFindings(t, filepath.Join(reports, "findings.csv"))
	assert.Equal(t, "InsufficientData", rows["fs"][5], "no standard configured")

	_, err = runTaxaudit(t, "analyze", dir, "--standard", "tt133", "--out", reports)
	require.NoError(t, err)
	rows = readFindings(t, filepath.Join(reports, "findings.csv"))
	assert.NotContains(t, rows, "fs")
	assert.Contains(t, rows, "a.balances")
}

func TestAnalyze_InvalidFlags(t *testing.T) {
	dir := workspace(t)

	_, err := runTaxaudit(t, "analyze", dir, "--standard", "ifrs")
	assert.Error(t, err)

	_, err = runTaxaudit(t, "analyze", dir, "--sales-format", "purchase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales ledger format")
}

func TestAnalyze_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(dir, "out")

	_, err := runTaxaudit(t, "analyze", dir, "--out", reports)
	require.NoError(t, err)

	rows := readFindings(t, filepath.Join(reports, "findings.csv"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Informational", rows["no-data"][5])
}

func TestAnalyze_Commentary(t *testing.T) {
	const keyVar = "TAXAUDIT_TEST_GEMINI_KEY"
	t.Setenv(keyVar, "")
	require.NoError(t, os.Unsetenv(keyVar))

	var gotKey string
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			gotPrompt = body.Contents[0].Parts[0].Text
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"- Doanh thu lệch 20"}]}}]}`))
	}))
	defer srv.Close()

	dir := workspace(t)
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	cfg.Commentary.Endpoint = srv.URL
	cfg.Commentary.Model = "test-model"
	cfg.Commentary.APIKeyEnv = keyVar
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))
	writeFile(t, filepath.Join(dir, ".env"), keyVar+"=secret-key\n")

	out, err := runTaxaudit(t, "analyze", dir, "--commentary")
	require.NoError(t, err)
	assert.Contains(t, out, "Commentary")
	assert.Contains(t, out, "- Doanh thu lệch 20")
	assert.Equal(t, "secret-key", gotKey)
	assert.Contains(t, gotPrompt, "VAT revenue vs CIT revenue")
}

func TestAnalyze_CommentaryWithoutKeyIsNotFatal(t *testing.T) {
	const keyVar = "TAXAUDIT_TEST_MISSING_KEY"
	t.Setenv(keyVar, "")
	require.NoError(t, os.Unsetenv(keyVar))

	dir := workspace(t)
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	cfg.Commentary.APIKeyEnv = keyVar
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out, err := runTaxaudit(t, "analyze", dir, "--commentary")
	require.NoError(t, err)
	assert.Contains(t, out, "Commentary unavailable")
}

func TestInspect(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "vat.xml"), filing("842", "12/2024", "<ct26>480</ct26><ct40>48</ct40>"))

	out, err := runTaxaudit(t, "inspect", path)
	require.NoError(t, err)

	var view struct {
		File     string         `json:"file"`
		Code     string         `json:"code"`
		Category string         `json:"category"`
		Record   map[string]any `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, path, view.File)
	assert.Equal(t, "842", view.Code)
	assert.Equal(t, "vat", view.Category)
	assert.Equal(t, "480", view.Record["ct26"])
	assert.Equal(t, "0101234567", view.Record["mst"])

	// Keys keep document order.
	assert.Less(t, strings.Index(out, `"maTKhai"`), strings.Index(out, `"ct26"`))
}

func TestInspect_Malformed(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.xml"), "<HSoThueDTu>")
	_, err := runTaxaudit(t, "inspect", path)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runTaxaudit(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taxaudit dev")
}
