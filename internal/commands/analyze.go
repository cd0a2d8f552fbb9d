package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxaudit/internal/accounts"
	"github.com/cleared-dev/taxaudit/internal/analysis"
	"github.com/cleared-dev/taxaudit/internal/commentary"
	"github.com/cleared-dev/taxaudit/internal/config"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/report"
)

type analyzeOptions struct {
	declarations []string
	sales        []string
	purchase     []string
	notes        []string
	standard     string
	standardSet  bool
	salesFormat  string
	out          string
	details      bool
	commentary   bool
}

func newAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [directory]",
		Short: "Reconcile the declarations and ledgers of a workspace",
		Long: "Reads declarations/, ledgers/sales/, ledgers/purchase/ and notes/ under the\n" +
			"workspace directory, runs every reconciliation rule and prints the report.\n" +
			"File flags replace the discovered files of their kind.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			opts.standardSet = cmd.Flags().Changed("standard")
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), dir, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.declarations, "declaration", nil, "XML declaration file (repeatable)")
	cmd.Flags().StringSliceVar(&opts.sales, "sales", nil, "sales ledger file (repeatable)")
	cmd.Flags().StringSliceVar(&opts.purchase, "purchase", nil, "purchase ledger file (repeatable)")
	cmd.Flags().StringSliceVar(&opts.notes, "notes", nil, "financial statement notes file (repeatable)")
	cmd.Flags().StringVar(&opts.standard, "standard", "", "accounting standard: tt133, tt200 or none (default from config)")
	cmd.Flags().StringVar(&opts.salesFormat, "sales-format", "", "sales ledger format: summary or detailed (default from config)")
	cmd.Flags().StringVar(&opts.out, "out", "", "write CSV tables to this directory")
	cmd.Flags().BoolVar(&opts.details, "details", false, "also print the detail tables")
	cmd.Flags().BoolVar(&opts.commentary, "commentary", false, "request a narrative commentary from the language model")

	return cmd
}

func runAnalyze(ctx context.Context, out io.Writer, dir string, opts analyzeOptions) error {
	logger := zerolog.Ctx(ctx)

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	in, err := analysis.Discover(dir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(opts.declarations) > 0 {
		in.Documents = opts.declarations
	}
	if len(opts.sales) > 0 {
		in.SalesFiles = opts.sales
	}
	if len(opts.purchase) > 0 {
		in.PurchaseFiles = opts.purchase
	}
	if len(opts.notes) > 0 {
		in.NotesFiles = opts.notes
	}

	if opts.standardSet {
		in.Standard, err = model.ParseStandard(opts.standard)
	} else {
		in.Standard, err = cfg.Standard()
	}
	if err != nil {
		return err
	}

	in.SalesFormat = cfg.Analysis.SalesLedgerFormat
	if opts.salesFormat != "" {
		in.SalesFormat = opts.salesFormat
	}
	in.Ledgers = ledger.NewDefaultRegistry(cfg.Thresholds.LineTolerance())
	if in.Ledgers.Get(in.SalesFormat) == nil || in.SalesFormat == ledger.FormatPurchase {
		return fmt.Errorf("unknown sales ledger format %q", in.SalesFormat)
	}
	in.Thresholds = cfg.Thresholds.Rules()

	chart, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	in.Chart = chart.All()

	logger.Debug().
		Int("declarations", len(in.Documents)).
		Int("sales", len(in.SalesFiles)).
		Int("purchase", len(in.PurchaseFiles)).
		Int("notes", len(in.NotesFiles)).
		Str("standard", in.Standard.String()).
		Msg("starting analysis")

	res := analysis.Run(ctx, in)

	if err := report.Render(out, res, report.Options{Details: opts.details}); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if opts.out != "" {
		written, err := report.Export(opts.out, res)
		if err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		fmt.Fprintf(out, "\nWrote %d files to %s\n", len(written), opts.out)
	}

	if opts.commentary {
		if err := loadDotEnv(dir); err != nil {
			return err
		}
		text, genErr := cfg.Commentary.Client().Generate(ctx, commentary.BuildPrompt(commentary.PromptInput{
			Tables:     res.Summaries.All(),
			Findings:   res.Findings,
			Notes:      res.Notes,
			NotesLimit: cfg.Commentary.NotesLimit,
		}))
		if genErr != nil {
			logger.Warn().Err(genErr).Msg("commentary failed")
		}
		if err := report.RenderCommentary(out, text, genErr); err != nil {
			return fmt.Errorf("rendering commentary: %w", err)
		}
	}
	return nil
}

// loadConfig reads the workspace config, falling back to the defaults when
// the directory has none.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return config.Default("", ""), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads dir/.env if present. Variables already set in the
// environment win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
