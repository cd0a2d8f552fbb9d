package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrEmptyDocument is returned for input without a root element.
	ErrEmptyDocument = errors.New("document has no root element")
	// ErrMultipleRoots is returned when a second top-level element follows the root.
	ErrMultipleRoots = errors.New("document has more than one root element")
)

type element struct {
	tag     string
	text    strings.Builder
	flushed bool
}

// Ingest walks a tagged document in document order and flattens every
// element carrying direct text into a Record. Malformed input yields an
// empty Record together with the error.
func Ingest(r io.Reader) (*Record, error) {
	rec := NewRecord()
	dec := xml.NewDecoder(r)

	var stack []*element
	seenRoot := false

	flush := func() {
		top := stack[len(stack)-1]
		if top.flushed {
			return
		}
		top.flushed = true
		value := strings.TrimSpace(top.text.String())
		if value == "" {
			return
		}
		var parent, grandparent string
		if n := len(stack); n >= 2 {
			parent = stack[n-2].tag
		}
		if n := len(stack); n >= 3 {
			grandparent = stack[n-3].tag
		}
		if IsSingleton(top.tag) {
			rec.SetOnce(top.tag, value)
			return
		}
		rec.InsertOrAppend(DeriveKey(top.tag, parent, grandparent), value)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return NewRecord(), fmt.Errorf("parsing document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if seenRoot {
					return NewRecord(), ErrMultipleRoots
				}
				seenRoot = true
			} else {
				// Direct text ends at the first child.
				flush()
			}
			stack = append(stack, &element{tag: t.Name.Local})
		case xml.CharData:
			if len(stack) > 0 && !stack[len(stack)-1].flushed {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			flush()
			stack = stack[:len(stack)-1]
		}
	}

	if !seenRoot {
		return NewRecord(), ErrEmptyDocument
	}
	return rec, nil
}

// IngestBytes is Ingest over an in-memory document.
func IngestBytes(data []byte) (*Record, error) {
	return Ingest(bytes.NewReader(data))
}

// IngestFile reads and ingests the document at path.
func IngestFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewRecord(), fmt.Errorf("reading document: %w", err)
	}
	return IngestBytes(data)
}
