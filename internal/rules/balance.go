package rules

import (
	"github.com/cleared-dev/taxaudit/internal/model"
)

// balanceCheck flags a nonzero balance in one or two statement lines.
// Provisions are reported as negative figures, so the sign does not matter.
type balanceCheck struct {
	Topic string
	A, B  field
	// Trigger lists the keys that raise the flag; empty means A and B.
	Trigger []string
	Hint    string
}

func (b balanceCheck) fires(c *Context) bool {
	keys := b.Trigger
	if len(keys) == 0 {
		keys = []string{b.A.Key, b.B.Key}
	}
	rec := c.statements()
	for _, k := range keys {
		if k != "" && !rec.Amount(k).IsZero() {
			return true
		}
	}
	return false
}

// balanceRule turns a table of balance checks into a Rule. With each set,
// every check reports OK or Warning; otherwise only firing checks report and
// a rule that never fires reports a single OK with clear.
func balanceRule(id, topic string, each bool, clear string, checks ...balanceCheck) Rule {
	return Rule{
		ID:       id,
		Topic:    topic,
		Requires: NeedFinancialStatements,
		Check: func(c *Context) []model.Finding {
			rec := c.statements()
			var out []model.Finding
			for _, b := range checks {
				a, bb := b.A.figure(rec), b.B.figure(rec)
				switch {
				case b.fires(c):
					out = append(out, flag(id, b.Topic, a, bb, model.StatusWarning, b.Hint))
				case each:
					out = append(out, flag(id, b.Topic, a, bb, model.StatusOK, clear))
				}
			}
			if len(out) == 0 {
				out = append(out, flag(id, topic, model.Missing(""), model.Missing(""), model.StatusOK, clear))
			}
			return out
		},
	}
}
