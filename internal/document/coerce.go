package document

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumberOr parses s as a decimal number and falls back to def when s is
// blank or malformed. It never fails.
func ParseNumberOr(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// Number projects key as a single number: the first occurrence of a list is
// used, and a missing or malformed value yields def.
func (r *Record) Number(key string, def decimal.Decimal) decimal.Decimal {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	s, ok := v.First()
	if !ok {
		return def
	}
	return ParseNumberOr(s, def)
}

// Amount is Number with a zero default.
func (r *Record) Amount(key string) decimal.Decimal {
	return r.Number(key, decimal.Zero)
}

// Text projects key as a single string with the same list rule as Number.
func (r *Record) Text(key, def string) string {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	s, ok := v.First()
	if !ok {
		return def
	}
	return s
}

// SumAmounts adds the Amount of every key.
func (r *Record) SumAmounts(keys ...string) decimal.Decimal {
	total := decimal.Zero
	for _, k := range keys {
		total = total.Add(r.Amount(k))
	}
	return total
}
