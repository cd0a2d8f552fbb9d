package declaration

import (
	"strings"

	"github.com/cleared-dev/taxaudit/internal/document"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// StatusRecorded marks a filing accepted by the tax authority. Documents read
// from local files carry it implicitly.
const StatusRecorded = "recorded"

// portalRecorded is the processing status the e-filing portal shows for a
// successfully posted filing.
const portalRecorded = "TMS - Gói tin hạch toán thành công"

// IsRecorded reports whether a processing status counts as successfully
// recorded. An empty status means the caller did not supply one.
func IsRecorded(status string) bool {
	s := strings.TrimSpace(status)
	return s == "" || strings.EqualFold(s, StatusRecorded) || strings.Contains(s, portalRecorded)
}

// Submission is one ingested document offered for classification.
type Submission struct {
	Record *document.Record
	Source string
	Status string // processing status; empty for local files
}

// SkipReason says why a submission was not retained.
type SkipReason string

const (
	SkipUnknownCode SkipReason = "unknown type code"
	SkipNotRecorded SkipReason = "not successfully recorded"
	SkipSuperseded  SkipReason = "superseded"
	SkipEmptyRecord SkipReason = "empty record"
)

// Skip records a submission that did not become a Declaration.
type Skip struct {
	Source string
	Code   string
	Period string
	Reason SkipReason
}

// Resolution is the output of Resolve.
type Resolution struct {
	Declarations []model.Declaration
	Skipped      []Skip
}

type groupKey struct {
	category model.Category
	period   string
}

// Resolve classifies submissions and keeps at most one declaration per
// (category, period). Within a group a supplementary filing replaces an
// official one or a supplementary one with a lower sequence; an official
// filing is kept only while nothing else is. Groups appear in the order
// they were first seen.
func Resolve(subs []Submission) Resolution {
	var res Resolution
	var order []groupKey
	kept := make(map[groupKey]model.Declaration)

	for _, s := range subs {
		if s.Record.Len() == 0 {
			res.Skipped = append(res.Skipped, Skip{Source: s.Source, Reason: SkipEmptyRecord})
			continue
		}
		d, ok := FromRecord(s.Record, s.Source)
		if !ok {
			res.Skipped = append(res.Skipped, Skip{
				Source: s.Source,
				Code:   s.Record.Text(document.TagTypeCode, ""),
				Reason: SkipUnknownCode,
			})
			continue
		}
		if !IsRecorded(s.Status) {
			res.Skipped = append(res.Skipped, skipOf(d, SkipNotRecorded))
			continue
		}

		key := groupKey{d.Category, d.Period}
		cur, exists := kept[key]
		if !exists {
			order = append(order, key)
			kept[key] = d
			continue
		}
		if supersedes(d, cur) {
			res.Skipped = append(res.Skipped, skipOf(cur, SkipSuperseded))
			kept[key] = d
		} else {
			res.Skipped = append(res.Skipped, skipOf(d, SkipSuperseded))
		}
	}

	for _, k := range order {
		res.Declarations = append(res.Declarations, kept[k])
	}
	return res
}

// supersedes reports whether next replaces the currently kept filing.
func supersedes(next, cur model.Declaration) bool {
	if next.Kind != model.FilingAmended {
		return false
	}
	return cur.Kind != model.FilingAmended || next.Sequence > cur.Sequence
}

func skipOf(d model.Declaration, reason SkipReason) Skip {
	return Skip{Source: d.Source, Code: d.Code, Period: d.Period, Reason: reason}
}
