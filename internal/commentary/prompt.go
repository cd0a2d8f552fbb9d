// Package commentary asks a generative language model for a short narrative
// over the reconciliation results. The findings themselves are never
// changed by it.
package commentary

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cleared-dev/taxaudit/internal/model"
	"github.com/cleared-dev/taxaudit/internal/notes"
)

const instruction = "Bạn là một chuyên gia phân tích thuế. Dựa trên các số liệu tổng hợp từ hồ sơ khai thuế " +
	"và các tài liệu dưới đây, hãy đưa ra một nhận xét ngắn gọn (khoảng 3-4 gạch đầu dòng) về tình hình " +
	"tài chính và các rủi ro thuế tiềm ẩn nổi bật của doanh nghiệp."

// DefaultNotesLimit caps the notes excerpt in characters.
const DefaultNotesLimit = 4000

// PromptInput is the material the prompt is built from.
type PromptInput struct {
	Tables     []*model.SummaryTable
	Findings   []model.Finding // only Warning findings are quoted
	Notes      string
	NotesLimit int
}

// BuildPrompt renders the instruction followed by every non-empty summary
// table, the warnings and a notes excerpt.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")

	for _, t := range in.Tables {
		if t.Empty() {
			continue
		}
		fmt.Fprintf(&b, "--- %s ---\n", t.Title)
		writeTable(&b, t)
		b.WriteString("\n")
	}

	if issues := model.Issues(in.Findings); len(issues) > 0 {
		b.WriteString("--- CÁC RỦI RO ĐÃ PHÁT HIỆN ---\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Topic\tA\tB\tDifference\tSuggestion")
		for _, f := range issues {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Topic, f.A, f.B, f.Difference, f.Suggestion)
		}
		tw.Flush()
		b.WriteString("\n")
	}

	if text := strings.TrimSpace(in.Notes); text != "" {
		limit := in.NotesLimit
		if limit <= 0 {
			limit = DefaultNotesLimit
		}
		b.WriteString("--- NỘI DUNG THUYẾT MINH BCTC ---\n")
		b.WriteString(notes.Truncate(text, limit))
		b.WriteString("\n")
	}
	return b.String()
}

func writeTable(b *strings.Builder, t *model.SummaryTable) {
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{"Metric"}, t.Periods...)
	if t.HasTotal {
		header = append(header, "Total")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, r := range t.Rows {
		cells := []string{r.Label}
		for _, v := range r.Values {
			cells = append(cells, model.FormatAmount(v))
		}
		if t.HasTotal {
			cells = append(cells, model.FormatAmount(r.Total))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	tw.Flush()
}
