package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cleared-dev/taxaudit/internal/analysis"
	"github.com/cleared-dev/taxaudit/internal/ledger"
	"github.com/cleared-dev/taxaudit/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	wrapStyle    = cellStyle.Width(56)

	okStyle           = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	warningStyle      = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).Bold(true)
	insufficientStyle = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD75F"})
	infoStyle         = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

// StatusStyle returns the cell style of a finding status.
func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusMatch, model.StatusOK:
		return okStyle
	case model.StatusWarning:
		return warningStyle
	case model.StatusInsufficientData:
		return insufficientStyle
	default:
		return infoStyle
	}
}

// Options selects optional report sections.
type Options struct {
	Details bool // include the detail catalogs
}

// Render writes the terminal report of res.
func Render(w io.Writer, res *analysis.Result, opts Options) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tax audit reconciliation") + "\n")
	name, taxID := res.Taxpayer()
	if name != "" || taxID != "" {
		fmt.Fprintf(&b, "%s  %s\n", name, mutedStyle.Render(taxID))
	}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render("standard: "+res.Standard.String()+"  run: "+res.RunID))

	if len(res.Problems) > 0 {
		section(&b, "Skipped files")
		for _, p := range res.Problems {
			fmt.Fprintf(&b, "  %s %s\n", warningStyle.Render("!"), p.Error())
		}
	}

	if len(res.Declarations) > 0 {
		section(&b, "Declarations")
		b.WriteString(declarationsTable(res.Declarations) + "\n")
	}

	for _, t := range res.Summaries.All() {
		if t.Empty() {
			continue
		}
		section(&b, t.Title)
		b.WriteString(SummaryTable(t) + "\n")
	}

	if opts.Details {
		for _, t := range res.Details.All() {
			if t.Empty() {
				continue
			}
			section(&b, t.Title)
			b.WriteString(DetailTable(t) + "\n")
		}
	}

	if res.Sales != nil || res.Purchase != nil {
		section(&b, "Invoice ledgers")
		b.WriteString(ledgerTable(res.Sales, res.Purchase) + "\n")
		if res.Sales != nil && len(res.Sales.Mismatches) > 0 {
			fmt.Fprintf(&b, "%s\n", warningStyle.Render(
				fmt.Sprintf("%d sales line(s) where quantity × unit price differs from the stated total", len(res.Sales.Mismatches))))
			b.WriteString(mismatchTable(res.Sales.Mismatches) + "\n")
		}
	}

	section(&b, "Findings")
	b.WriteString(FindingsTable(res.Findings) + "\n")
	fmt.Fprintf(&b, "%d findings, %d warnings\n", len(res.Findings), len(res.Issues()))

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCommentary writes the model commentary, or why there is none.
func RenderCommentary(w io.Writer, text string, err error) error {
	var b strings.Builder
	section(&b, "Commentary")
	if err != nil {
		b.WriteString(warningStyle.Render("Commentary unavailable: "+err.Error()) + "\n")
	} else {
		b.WriteString(strings.TrimSpace(text) + "\n")
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n" + sectionStyle.Render(title) + "\n")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...)
}

// FindingsTable renders findings with a colored status column.
func FindingsTable(findings []model.Finding) string {
	t := newTable("Topic", "A", "B", "Difference", "Status", "Suggestion")
	for _, f := range findings {
		t.Row(f.Topic, f.A.String(), f.B.String(), f.Difference, string(f.Status), f.Suggestion)
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 4:
			return StatusStyle(findings[row].Status)
		case col == 0 || col == 5:
			return wrapStyle
		case col == 3:
			return numberStyle
		}
		return cellStyle
	}).String()
}

// SummaryTable renders one summary table with formatted amounts.
func SummaryTable(st *model.SummaryTable) string {
	headers := append([]string{"Metric"}, st.Periods...)
	if st.HasTotal {
		headers = append(headers, "Total")
	}
	t := newTable(headers...)
	for _, r := range st.Rows {
		cells := []string{r.Label}
		for _, v := range r.Values {
			cells = append(cells, model.FormatAmount(v))
		}
		if st.HasTotal {
			cells = append(cells, model.FormatAmount(r.Total))
		}
		t.Row(cells...)
	}
	return t.StyleFunc(numbersAfter(1)).String()
}

// DetailTable renders one detail catalog.
func DetailTable(dt *model.DetailTable) string {
	t := newTable(append([]string{"Code", "Item"}, dt.Columns...)...)
	for _, r := range dt.Rows {
		cells := []string{r.Code, r.Label}
		for _, v := range r.Values {
			cells = append(cells, model.FormatAmount(v))
		}
		t.Row(append(cells, r.Text...)...)
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 1:
			return wrapStyle
		case col >= 2 && len(dt.Rows[row].Values) > 0:
			return numberStyle
		}
		return cellStyle
	}).String()
}

func declarationsTable(decls []model.Declaration) string {
	t := newTable("Form", "Period", "Kind", "Sequence", "Source")
	for _, d := range decls {
		t.Row(d.Category.Form(), d.Period, string(d.Kind), strconv.Itoa(d.Sequence), d.Source)
	}
	return t.StyleFunc(numbersAfter(99)).String()
}

func ledgerTable(sales, purchase *ledger.Result) string {
	t := newTable("Ledger", "Pre-tax", "Tax", "Discount", "Payment", "Rows")
	add := func(name string, r *ledger.Result) {
		if r == nil {
			return
		}
		tot := r.Totals
		t.Row(name+" ("+r.Format+")",
			model.FormatAmount(tot.PreTax), model.FormatAmount(tot.Tax),
			model.FormatAmount(tot.Discount), model.FormatAmount(tot.Payment),
			strconv.Itoa(tot.Rows))
	}
	add("Sales", sales)
	add("Purchase", purchase)
	return t.StyleFunc(numbersAfter(1)).String()
}

func mismatchTable(ms []ledger.Mismatch) string {
	t := newTable("Line", "Invoice", "Item", "Quantity", "Unit price", "Stated", "Computed")
	for _, m := range ms {
		t.Row(strconv.Itoa(m.Line), m.Invoice, m.Item,
			m.Quantity.String(), model.FormatAmount(m.UnitPrice),
			model.FormatAmount(m.Stated), model.FormatAmount(m.Computed))
	}
	return t.StyleFunc(numbersAfter(3)).String()
}

// numbersAfter right-aligns every column from first on.
func numbersAfter(first int) table.StyleFunc {
	return func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col >= first:
			return numberStyle
		}
		return cellStyle
	}
}
