// Package notes extracts plain text from the notes to the financial
// statements so it can be quoted in commentary prompts.
package notes

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupported is returned for file types without a text extractor.
var ErrUnsupported = errors.New("unsupported notes format")

// Dir is the workspace directory holding notes files.
const Dir = "notes"

// Read extracts the text of a .txt, .md, .docx or .pdf file.
func Read(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".docx", ".pdf":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading notes: %w", err)
	}
	switch ext {
	case ".docx":
		return FromDocx(bytes.NewReader(data), int64(len(data)))
	case ".pdf":
		return FromPDF(bytes.NewReader(data), int64(len(data)))
	}
	return string(data), nil
}

// FromDocx returns the paragraphs of a Word document, one per line.
func FromDocx(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening document part: %w", err)
		}
		defer rc.Close()
		return paragraphs(rc)
	}
	return "", errors.New("docx has no word/document.xml")
}

// paragraphs walks WordprocessingML: runs of w:t are text, w:tab and w:br
// are whitespace, and each w:p ends a line.
func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing document part: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// FromPDF returns the text of every page, row by row.
func FromPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("reading pdf: %v", p)
		}
	}()

	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	for n := 1; n <= pr.NumPage(); n++ {
		page := pr.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", n, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, w := range row.Content {
				words = append(words, w.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Truncate cuts s to at most limit characters. A limit of zero or less
// keeps everything.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
