package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// ReadTable loads every row of a .csv file or of the first sheet of an .xlsx
// workbook. Every row is padded to the widest row of the table, so columns
// left blank in all data rows still count when the header names them.
func ReadTable(path string) ([][]string, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, fmt.Errorf("opening ledger: %w", ferr)
		}
		defer f.Close()
		rows, err = ReadCSV(f)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrUnknownSchema, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return pad(rows), nil
}

// ReadCSV reads a comma-separated table with a variable number of fields per
// row.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}

// readWorkbook returns the rows of the first sheet. excelize drops trailing
// empty cells, so rows come back ragged.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// width is the column count of a table: its widest row, header and preamble
// rows included.
func width(rows [][]string) int {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	return w
}

// pad extends every row to the width of the table.
func pad(rows [][]string) [][]string {
	w := width(rows)
	for i, r := range rows {
		if len(r) < w {
			rows[i] = append(r, make([]string, w-len(r))...)
		}
	}
	return rows
}

// after drops the first n rows.
func after(rows [][]string, n int) [][]string {
	if len(rows) <= n {
		return nil
	}
	return rows[n:]
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
