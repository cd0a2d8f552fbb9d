package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a whole-unit amount with thousands separators: "-1,234,567".
// Halves round to even.
func FormatAmount(d decimal.Decimal) string {
	return groupThousands(d.RoundBank(0).StringFixed(0))
}

// FormatPercent renders a percentage with two decimals: "1,234.50%".
func FormatPercent(d decimal.Decimal) string {
	s := d.RoundBank(2).StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return groupThousands(whole) + "." + frac + "%"
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "0" {
		neg = false
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
