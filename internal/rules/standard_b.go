package rules

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// StandardB returns the rule set for statements prepared under Circular 200.
func StandardB() []Rule {
	return []Rule{
		cashInterestRule("b.cash-interest", "Cash vs interest expense"),
		balanceRule("b.intercompany", "Short-term intercompany receivables", false, "No intercompany receivables.", balanceCheck{
			Topic: "Short-term intercompany receivables",
			A:     field{"scn_ct133", "item 133"},
			Hint:  "Intercompany receivables exist. Check group transactions for omitted revenue.",
		}),
		balanceRule("b.other-receivables", "Other short-term receivables", false, "No other short-term receivables.", balanceCheck{
			Topic: "Other short-term receivables",
			A:     field{"scn_ct136", "item 136"},
			Hint:  "Other short-term receivables exist. Check that no revenue was booked into this line.",
		}),
		balanceRule("b.provisions", "Provisions", false, "No provision balances.", provisionChecks...),
		{
			ID:       "b.vat-carry-forward",
			Topic:    "Deductible VAT: statements vs last VAT return",
			Requires: NeedFinancialStatements | NeedVATForm,
			Missing:  "Upload the VAT return for the last period of the year.",
			Check:    checkVATCarryForward,
		},
		balanceRule("b.related-parties", "Related-party investments", false, "No investments in subsidiaries or associates.", balanceCheck{
			Topic: "Related-party investments",
			A:     field{"scn_ct251", "investments in subsidiaries"},
			B:     field{"scn_ct252", "investments in associates and joint ventures"},
			Hint:  "Investments in subsidiaries or associates exist. Check that the related-party appendix was filed with the CIT settlement.",
		}),
		balanceRule("b.customer-prepayments", "Customer prepayments", false, "No customer prepayments.", balanceCheck{
			Topic: "Customer prepayments",
			A:     field{"scn_ct312", "short-term, item 312"},
			B:     field{"scn_ct332", "long-term, item 332"},
			Hint:  "Customers paid in advance. Request the detail; revenue may have been omitted.",
		}),
		balanceRule("b.employee-payables", "Payables to employees", false, "No payables to employees.", balanceCheck{
			Topic: "Payables to employees",
			A:     field{"scn_ct314", "item 314"},
			Hint:  "Confirm the balance was paid out by 31 March of the following year; unpaid amounts may be disallowed as expenses.",
		}),
		balanceRule("b.unearned-revenue", "Unearned revenue", false, "No unearned revenue.", balanceCheck{
			Topic: "Unearned revenue",
			A:     field{"scn_ct318", "short-term, item 318"},
			B:     field{"scn_ct336", "long-term, item 336"},
			Hint:  "Unearned revenue exists. Request the detail to confirm revenue was fully recognised.",
		}),
		{ID: "b.interest-paid", Topic: "Interest expense vs interest paid", Requires: NeedFinancialStatements, Check: checkInterestPaid},
		{ID: "b.variance", Topic: "Year-over-year variance", Requires: NeedFinancialStatements, Check: checkVariance},
	}
}

var provisionChecks = []balanceCheck{
	provision("ct137", "Provision for doubtful short-term receivables"),
	provision("ct149", "Provision for inventory write-down"),
	provision("ct219", "Provision for doubtful long-term receivables"),
	provision("ct321", "Bonus and welfare fund"),
}

func provision(code, name string) balanceCheck {
	return balanceCheck{
		Topic: "Provisions: " + name,
		A:     field{"sdn_" + code, "opening"},
		B:     field{"scn_" + code, "closing"},
		Hint:  "Provision balances exist. Ask the business to justify the provisions against the regulations and supporting records.",
	}
}

func checkVATCarryForward(c *Context) []model.Finding {
	last, _ := metrics.Latest(c.vatForms, model.CategoryVAT)
	return []model.Finding{compare("b.vat-carry-forward", "Deductible VAT: statements vs last VAT return",
		field{"scn_ct152", "statements, item 152"}.figure(c.statements()),
		model.Amount(metrics.Value(last, metrics.VATCarryForward), "VAT return "+last.Period+", item [43]"),
		exact, model.StatusMatch,
		"Deductible VAT on the statements differs from the VAT carried forward on the last VAT return of the year.")}
}

func checkInterestPaid(c *Context) []model.Finding {
	rec := c.statements()
	expense := field{"kqkd_nn_ct23", "income statement, item 23"}.figure(rec)
	paid := rec.Amount("lctt_nn_ct04").Abs()
	const hint = "Reconcile interest expense on the income statement with interest paid on the cash flow statement."

	if paid.IsZero() {
		return []model.Finding{{
			Rule:       "b.interest-paid",
			Topic:      "Interest expense vs interest paid",
			A:          expense,
			B:          model.Missing("no cash flow data"),
			Difference: model.NotAvailable,
			Status:     model.StatusInsufficientData,
			Suggestion: hint + " Supply a document that includes the cash flow statement.",
		}}
	}
	return []model.Finding{compare("b.interest-paid", "Interest expense vs interest paid",
		expense, model.Amount(paid, "cash flow statement, item 04"), exact, model.StatusMatch, hint)}
}

type varianceItem struct {
	name           string
	current, prior string
}

var varianceItems = []varianceItem{
	{"Revenue", "kqkd_nn_ct01", "kqkd_nt_ct01"},
	{"Cost of goods sold", "kqkd_nn_ct11", "kqkd_nt_ct11"},
	{"Selling expenses", "kqkd_nn_ct25", "kqkd_nt_ct25"},
	{"General and administrative expenses", "kqkd_nn_ct26", "kqkd_nt_ct26"},
	{"Other income", "kqkd_nn_ct31", "kqkd_nt_ct31"},
}

var hundred = decimal.NewFromInt(100)

// checkVariance flags income statement lines that moved by more than the
// variance threshold against a nonzero prior year.
func checkVariance(c *Context) []model.Finding {
	rec := c.statements()
	limit := c.Thresholds.VariancePercent

	var out []model.Finding
	for _, it := range varianceItems {
		current, prior := rec.Amount(it.current), rec.Amount(it.prior)
		if prior.IsZero() {
			continue
		}
		change := current.Sub(prior).Div(prior).Mul(hundred)
		if change.Abs().LessThanOrEqual(limit) {
			continue
		}
		out = append(out, model.Finding{
			Rule:       "b.variance",
			Topic:      "Year-over-year variance: " + it.name,
			A:          model.Amount(prior, "prior year"),
			B:          model.Amount(current, "current year"),
			Difference: model.FormatPercent(change),
			Status:     model.StatusWarning,
			Suggestion: "Ask the business to explain the change of more than " + limit.String() + "% against the prior year.",
		})
	}
	if len(out) == 0 {
		out = append(out, flag("b.variance", "Year-over-year variance", model.Missing(""), model.Missing(""),
			model.StatusOK, "No income statement line moved by more than "+limit.String()+"%."))
	}
	return out
}
