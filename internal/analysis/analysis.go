// Package analysis runs the whole reconciliation over one taxpayer's files:
// ingest, classification, summary and detail tables, ledgers and rules.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/taxaudit/internal/accounts"
	"github.com/cleared-dev/taxaudit/internal/declaration"
	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/notes"
	"github.com/cleared-dev/taxaudit/internal/rules"
)

// Input names the files of one run and the choices that shape it.
type Input struct {
	Documents     []string // XML declarations
	SalesFiles    []string
	SalesFormat   string // ledger.FormatSummary or ledger.FormatDetailed
	PurchaseFiles []string
	NotesFiles    []string

	Standard   model.Standard
	Chart      []model.Account // nil selects accounts.DefaultChart
	Thresholds rules.Thresholds
	Ledgers    *ledger.Registry // nil selects ledger.DefaultRegistry
}

// Problem is a file that could not be used. The run carries on without it.
type Problem struct {
	Source string
	Err    error
}

func (p Problem) Error() string { return p.Source + ": " + p.Err.Error() }

func (p Problem) Unwrap() error { return p.Err }

// Result is everything one run produced.
type Result struct {
	RunID        string
	Standard     model.Standard
	Declarations []model.Declaration
	Skipped      []declaration.Skip
	Problems     []Problem
	Summaries    metrics.Summaries
	Details      metrics.Details
	Sales        *ledger.Result
	Purchase     *ledger.Result
	Notes        string
	Findings     []model.Finding
}

// Issues returns the findings that need an explanation.
func (r *Result) Issues() []model.Finding {
	return model.Issues(r.Findings)
}

// Taxpayer returns the name and tax ID of the first declaration.
func (r *Result) Taxpayer() (name, taxID string) {
	for _, d := range r.Declarations {
		if d.TaxpayerName != "" || d.TaxID != "" {
			return d.TaxpayerName, d.TaxID
		}
	}
	return "", ""
}

// Run executes the pipeline. It never fails: unreadable files become
// Problems and rules lacking input report InsufficientData.
func Run(ctx context.Context, in Input) *Result {
	res := &Result{RunID: uuid.NewString(), Standard: in.Standard}
	logger := zerolog.Ctx(ctx).With().Str("run_id", res.RunID).Logger()
	ctx = logger.WithContext(ctx)

	if in.Chart == nil {
		in.Chart = accounts.DefaultChart()
	}
	if in.Ledgers == nil {
		in.Ledgers = ledger.DefaultRegistry()
	}
	if in.Thresholds == (rules.Thresholds{}) {
		in.Thresholds = rules.DefaultThresholds()
	}

	res.ingest(ctx, in.Documents)
	res.Summaries = metrics.Summarize(res.Declarations)
	res.Details = metrics.Detail(res.Declarations, in.Chart)

	salesFormat := in.SalesFormat
	if salesFormat == "" {
		salesFormat = ledger.FormatSummary
	}
	res.Sales = res.loadLedger(ctx, in.Ledgers, salesFormat, in.SalesFiles)
	res.Purchase = res.loadLedger(ctx, in.Ledgers, ledger.FormatPurchase, in.PurchaseFiles)
	res.Notes = res.readNotes(ctx, in.NotesFiles)

	res.Findings = rules.Evaluate(rules.Input{
		Declarations: res.Declarations,
		Summaries:    res.Summaries,
		Standard:     in.Standard,
		Sales:        totals(res.Sales),
		Purchase:     totals(res.Purchase),
		Thresholds:   in.Thresholds,
	})

	logger.Info().
		Int("declarations", len(res.Declarations)).
		Int("skipped", len(res.Skipped)).
		Int("problems", len(res.Problems)).
		Int("findings", len(res.Findings)).
		Int("warnings", len(res.Issues())).
		Msg("analysis complete")
	return res
}

func (r *Result) ingest(ctx context.Context, paths []string) {
	logger := zerolog.Ctx(ctx)

	subs := make([]declaration.Submission, 0, len(paths))
	for _, path := range paths {
		rec, err := document.IngestFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping document")
			r.Problems = append(r.Problems, Problem{Source: path, Err: err})
			continue
		}
		subs = append(subs, declaration.Submission{Record: rec, Source: path, Status: declaration.StatusRecorded})
	}

	resolved := declaration.Resolve(subs)
	r.Declarations, r.Skipped = resolved.Declarations, resolved.Skipped
	for _, d := range r.Declarations {
		logger.Debug().Str("file", d.Source).Str("code", d.Code).
			Str("category", string(d.Category)).Str("period", d.Period).Msg("declaration kept")
	}
	for _, s := range r.Skipped {
		logger.Debug().Str("file", s.Source).Str("code", s.Code).
			Str("period", s.Period).Str("reason", string(s.Reason)).Msg("declaration skipped")
	}
}

func (r *Result) loadLedger(ctx context.Context, reg *ledger.Registry, format string, paths []string) *ledger.Result {
	if len(paths) == 0 {
		return nil
	}
	p := reg.Get(format)
	if p == nil {
		err := fmt.Errorf("%w: no parser for format %q", ledger.ErrUnknownSchema, format)
		zerolog.Ctx(ctx).Warn().Err(err).Msg("skipping ledgers")
		for _, path := range paths {
			r.Problems = append(r.Problems, Problem{Source: path, Err: err})
		}
		return nil
	}
	res, failed := ledger.Load(ctx, p, paths)
	for _, f := range failed {
		r.Problems = append(r.Problems, Problem{Source: f.Path, Err: f.Err})
	}
	return res
}

func (r *Result) readNotes(ctx context.Context, paths []string) string {
	var parts []string
	for _, path := range paths {
		text, err := notes.Read(path)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("skipping notes")
			r.Problems = append(r.Problems, Problem{Source: path, Err: err})
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func totals(r *ledger.Result) *model.InvoiceTotals {
	if r == nil {
		return nil
	}
	t := r.Totals
	return &t
}
