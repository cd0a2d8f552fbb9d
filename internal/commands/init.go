package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxaudit/internal/accounts"
	"github.com/cleared-dev/taxaudit/internal/analysis"
	"github.com/cleared-dev/taxaudit/internal/config"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/notes"
)

// ReportsDir is where `analyze --out` writes by convention.
const ReportsDir = "reports"

func newInitCommand() *cobra.Command {
	var name string
	var taxID string
	var standard string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new audit workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, taxID, standard)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "taxpayer name")
	cmd.Flags().StringVar(&taxID, "tax-id", "", "taxpayer tax identification number")
	cmd.Flags().StringVar(&standard, "standard", "", "accounting standard: tt133, tt200 or empty")

	return cmd
}

func runInit(out io.Writer, dir, name, taxID, standard string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	std, err := model.ParseStandard(standard)
	if err != nil {
		return err
	}

	// Create directory structure.
	dirs := []string{
		analysis.DeclarationsDir,
		ledger.SalesDir,
		ledger.PurchaseDir,
		notes.Dir,
		ReportsDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write taxaudit.yaml.
	cfg := config.Default(name, taxID)
	cfg.Analysis.AccountingStandard = string(std)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the trial-balance chart of accounts.
	if err := accounts.NewService(accounts.DefaultChart()).Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\n" + ReportsDir + "/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized taxaudit workspace at %s\n", dir)
	return nil
}
