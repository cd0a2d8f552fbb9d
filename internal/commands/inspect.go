package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxaudit/internal/declaration"
	"github.com/cleared-dev/taxaudit/internal/document"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.xml>",
		Short: "Print the flattened record of one declaration as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}
}

type inspectOutput struct {
	File     string           `json:"file"`
	Code     string           `json:"code"`
	Category string           `json:"category,omitempty"`
	Record   *document.Record `json:"record"`
}

func runInspect(out io.Writer, path string) error {
	rec, err := document.IngestFile(path)
	if err != nil {
		return err
	}

	code := rec.Text(document.TagTypeCode, "")
	view := inspectOutput{File: path, Code: code, Record: rec}
	if cat, ok := declaration.Classify(code); ok {
		view.Category = string(cat)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}
