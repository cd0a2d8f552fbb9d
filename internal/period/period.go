package period

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the length of a tax period.
type Kind int

const (
	KindUnknown Kind = iota
	KindMonth
	KindQuarter
	KindYear
)

// Period is a parsed tax period code such as "01/2024", "Q1/2024" or "2024".
type Period struct {
	Raw   string
	Kind  Kind
	Year  int
	Index int // month 1-12 or quarter 1-4; 0 for years
}

// Parse parses a period code. Accepted forms: "MM/YYYY", "M/YYYY",
// "Qn/YYYY" and "YYYY".
func Parse(s string) (Period, error) {
	raw := strings.TrimSpace(s)
	p := Period{Raw: raw}
	if raw == "" {
		return p, fmt.Errorf("empty period code")
	}

	head, yearText, found := strings.Cut(raw, "/")
	if !found {
		year, err := parseYear(raw)
		if err != nil {
			return p, fmt.Errorf("invalid period code %q: %w", s, err)
		}
		p.Kind, p.Year = KindYear, year
		return p, nil
	}

	year, err := parseYear(yearText)
	if err != nil {
		return p, fmt.Errorf("invalid year in period code %q: %w", s, err)
	}
	p.Year = year

	if q, ok := strings.CutPrefix(strings.ToUpper(head), "Q"); ok {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 4 {
			return Period{Raw: raw}, fmt.Errorf("invalid quarter in period code %q", s)
		}
		p.Kind, p.Index = KindQuarter, n
		return p, nil
	}

	month, err := strconv.Atoi(head)
	if err != nil || month < 1 || month > 12 {
		return Period{Raw: raw}, fmt.Errorf("invalid month in period code %q", s)
	}
	p.Kind, p.Index = KindMonth, month
	return p, nil
}

func parseYear(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("year must have four digits")
	}
	return strconv.Atoi(s)
}

// Normalize rewrites a filed period code using the declaration's period
// cycle. Quarterly returns file "1/2024" for the first quarter; with cycle
// "Q" that becomes "Q1/2024". Other codes are returned trimmed.
func Normalize(code, cycle string) string {
	code = strings.TrimSpace(code)
	if !strings.EqualFold(strings.TrimSpace(cycle), "Q") {
		return code
	}
	head, year, found := strings.Cut(code, "/")
	if !found {
		return code
	}
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 || n > 4 {
		return code
	}
	return fmt.Sprintf("Q%d/%s", n, year)
}

// Of returns the parsed period, or an unknown-kind Period holding the raw
// text when the code cannot be parsed.
func Of(s string) Period {
	p, err := Parse(s)
	if err != nil {
		return Period{Raw: strings.TrimSpace(s)}
	}
	return p
}

// Valid reports whether the code was understood.
func (p Period) Valid() bool { return p.Kind != KindUnknown }

// String returns the code as filed.
func (p Period) String() string { return p.Raw }

// startMonth is the first calendar month covered, counted from year 0.
func (p Period) startMonth() int {
	switch p.Kind {
	case KindMonth:
		return p.Year*12 + p.Index - 1
	case KindQuarter:
		return p.Year*12 + (p.Index-1)*3
	}
	return p.Year * 12
}

// Compare orders periods chronologically by start month, then shorter periods
// first. Unparseable codes sort after every valid one, by text.
func Compare(a, b Period) int {
	switch {
	case a.Valid() && !b.Valid():
		return -1
	case !a.Valid() && b.Valid():
		return 1
	case !a.Valid() && !b.Valid():
		return strings.Compare(a.Raw, b.Raw)
	}
	if c := cmp.Compare(a.startMonth(), b.startMonth()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return strings.Compare(a.Raw, b.Raw)
}

// Less reports whether p sorts before q.
func (p Period) Less(q Period) bool { return Compare(p, q) < 0 }

// Sorted returns the distinct codes in chronological order.
func Sorted(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	var ps []Period
	for _, c := range codes {
		p := Of(c)
		if seen[p.Raw] {
			continue
		}
		seen[p.Raw] = true
		ps = append(ps, p)
	}
	slices.SortFunc(ps, Compare)

	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Raw
	}
	return out
}

// Latest returns the chronologically last valid code. Unparseable codes are
// only returned when nothing else is present; no codes yields "".
func Latest(codes []string) string {
	sorted := Sorted(codes)
	for i := len(sorted) - 1; i >= 0; i-- {
		if Of(sorted[i]).Valid() {
			return sorted[i]
		}
	}
	if len(sorted) == 0 {
		return ""
	}
	return sorted[len(sorted)-1]
}
