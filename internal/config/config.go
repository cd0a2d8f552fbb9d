package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/taxaudit/internal/commentary"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/rules"
)

// FileName is the workspace configuration file.
const FileName = "taxaudit.yaml"

// Config represents the top-level taxaudit.yaml configuration.
type Config struct {
	Taxpayer   TaxpayerConfig   `yaml:"taxpayer"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Commentary CommentaryConfig `yaml:"commentary"`
}

// TaxpayerConfig identifies the audited business. Display only.
type TaxpayerConfig struct {
	Name  string `yaml:"name"`
	TaxID string `yaml:"tax_id"`
}

// AnalysisConfig holds the per-workspace analysis choices.
type AnalysisConfig struct {
	AccountingStandard string `yaml:"accounting_standard"` // "tt133", "tt200" or empty
	SalesLedgerFormat  string `yaml:"sales_ledger_format"` // "summary" or "detailed"
}

// ThresholdsConfig tunes the reconciliation rules.
type ThresholdsConfig struct {
	CashInterest             int64   `yaml:"cash_interest"`
	LedgerTolerance          float64 `yaml:"ledger_tolerance"`
	LineTotalTolerance       float64 `yaml:"line_total_tolerance"`
	VariancePercent          float64 `yaml:"variance_percent"`
	InventoryRevenueMultiple float64 `yaml:"inventory_revenue_multiple"`
}

// CommentaryConfig selects the language model used for commentary. The key
// itself is read from the environment variable named by APIKeyEnv.
type CommentaryConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	Model      string        `yaml:"model"`
	APIKeyEnv  string        `yaml:"api_key_env"`
	Timeout    time.Duration `yaml:"timeout"`
	NotesLimit int           `yaml:"notes_limit"`
}

// Load reads a taxaudit.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name, taxID string) *Config {
	return &Config{
		Taxpayer: TaxpayerConfig{
			Name:  name,
			TaxID: taxID,
		},
		Analysis: AnalysisConfig{
			SalesLedgerFormat: ledger.FormatSummary,
		},
		Thresholds: ThresholdsConfig{
			CashInterest:             1_000_000_000,
			LedgerTolerance:          1,
			LineTotalTolerance:       0.01,
			VariancePercent:          30,
			InventoryRevenueMultiple: 2,
		},
		Commentary: CommentaryConfig{
			Endpoint:   commentary.DefaultEndpoint,
			Model:      commentary.DefaultModel,
			APIKeyEnv:  "GEMINI_API_KEY",
			Timeout:    commentary.DefaultTimeout,
			NotesLimit: commentary.DefaultNotesLimit,
		},
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.Standard(); err != nil {
		return fmt.Errorf("analysis.accounting_standard: %w", err)
	}
	switch c.Analysis.SalesLedgerFormat {
	case ledger.FormatSummary, ledger.FormatDetailed:
	default:
		return fmt.Errorf("analysis.sales_ledger_format: want %q or %q, got %q",
			ledger.FormatSummary, ledger.FormatDetailed, c.Analysis.SalesLedgerFormat)
	}
	return nil
}

// Standard parses the configured accounting standard.
func (c *Config) Standard() (model.Standard, error) {
	return model.ParseStandard(c.Analysis.AccountingStandard)
}

// Rules converts the thresholds for the rule engine.
func (t ThresholdsConfig) Rules() rules.Thresholds {
	return rules.Thresholds{
		CashInterest:             decimal.NewFromInt(t.CashInterest),
		LedgerTolerance:          decimal.NewFromFloat(t.LedgerTolerance),
		VariancePercent:          decimal.NewFromFloat(t.VariancePercent),
		InventoryRevenueMultiple: decimal.NewFromFloat(t.InventoryRevenueMultiple),
	}
}

// LineTolerance is the detailed sales ledger line-total tolerance.
func (t ThresholdsConfig) LineTolerance() decimal.Decimal {
	return decimal.NewFromFloat(t.LineTotalTolerance)
}

// Client builds the commentary client, reading the API key from the
// environment.
func (c CommentaryConfig) Client() *commentary.Client {
	return commentary.NewClient(commentary.Config{
		Endpoint: c.Endpoint,
		Model:    c.Model,
		APIKey:   os.Getenv(c.APIKeyEnv),
		Timeout:  c.Timeout,
	})
}
