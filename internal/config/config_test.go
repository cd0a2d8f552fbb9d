package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/rules"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Công ty Mẫu", "0101234567")
	cfg.Analysis.AccountingStandard = "tt200"
	cfg.Analysis.SalesLedgerFormat = "detailed"
	cfg.Thresholds.VariancePercent = 25
	cfg.Commentary.Timeout = 15 * time.Second

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	std, err := got.Standard()
	require.NoError(t, err)
	assert.Equal(t, model.StandardCircular200, std)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "0101234567")

	assert.Equal(t, "My Company", cfg.Taxpayer.Name)
	assert.Equal(t, "0101234567", cfg.Taxpayer.TaxID)
	assert.Equal(t, "", cfg.Analysis.AccountingStandard)
	assert.Equal(t, "summary", cfg.Analysis.SalesLedgerFormat)
	assert.Equal(t, int64(1_000_000_000), cfg.Thresholds.CashInterest)
	assert.InDelta(t, 0.01, cfg.Thresholds.LineTotalTolerance, 1e-9)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Commentary.APIKeyEnv)
	assert.Equal(t, 60*time.Second, cfg.Commentary.Timeout)
	assert.Equal(t, 4000, cfg.Commentary.NotesLimit)
	require.NoError(t, cfg.Validate())
}

func TestDefaultThresholdsMatchRules(t *testing.T) {
	got := Default("", "").Thresholds.Rules()
	want := rules.DefaultThresholds()

	assert.True(t, want.CashInterest.Equal(got.CashInterest))
	assert.True(t, want.LedgerTolerance.Equal(got.LedgerTolerance))
	assert.True(t, want.VariancePercent.Equal(got.VariancePercent))
	assert.True(t, want.InventoryRevenueMultiple.Equal(got.InventoryRevenueMultiple))
	assert.Equal(t, "0.01", Default("", "").Thresholds.LineTolerance().String())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  accounting_standard: tt133\nthresholds:\n  cash_interest: 500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tt133", cfg.Analysis.AccountingStandard)
	assert.Equal(t, "summary", cfg.Analysis.SalesLedgerFormat)
	assert.Equal(t, int64(500), cfg.Thresholds.CashInterest)
	assert.InDelta(t, 30, cfg.Thresholds.VariancePercent, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.Commentary.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"standard", "analysis:\n  accounting_standard: ifrs\n", "accounting_standard"},
		{"ledger format", "analysis:\n  sales_ledger_format: monthly\n", "sales_ledger_format"},
		{"yaml", "analysis: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "0101234567")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "tax_id:")
	assert.Contains(t, contents, "0101234567")
	assert.Contains(t, contents, "sales_ledger_format: summary")
	assert.Contains(t, contents, "cash_interest: 1000000000")
	assert.Contains(t, contents, "api_key_env: GEMINI_API_KEY")
	assert.Contains(t, contents, "timeout: 1m0s")
}

func TestCommentaryClientReadsKeyFromEnv(t *testing.T) {
	t.Setenv("TAXAUDIT_TEST_KEY", "")
	cfg := Default("", "").Commentary
	cfg.APIKeyEnv = "TAXAUDIT_TEST_KEY"
	assert.NotNil(t, cfg.Client())
}
