package rules

import (
	"fmt"

	"github.com/cleared-dev/taxaudit/internal/model"
)

// StandardA returns the rule set for statements prepared under Circular 133.
func StandardA() []Rule {
	return []Rule{
		cashInterestRule("a.cash-interest", "Unusual interest expense"),
		{ID: "a.receivables", Topic: "Debit flows of account 131", Requires: NeedFinancialStatements, Check: checkReceivables},
		{ID: "a.revenue", Topic: "Income statement revenue vs trial balance", Requires: NeedFinancialStatements, Check: checkRevenueFlows},
		{ID: "a.wip-finished-goods", Topic: "Work in process vs finished goods (154 vs 155)", Requires: NeedFinancialStatements, Check: checkWIPToFinishedGoods},
		{ID: "a.production-cost", Topic: "Production cost roll-up (154 vs 621, 622, 627)", Requires: NeedFinancialStatements, Check: checkProductionCost},
		{ID: "a.sales-returns", Topic: "Sales returns", Requires: NeedFinancialStatements, Check: checkSalesReturns},
		{ID: "a.materials", Topic: "Materials issued vs material expense (152 vs 621)", Requires: NeedFinancialStatements, Check: checkMaterials},
		{ID: "a.inventory", Topic: "Fictitious inventory risk", Requires: NeedFinancialStatements, Check: checkInventory},
		balanceRule("a.balances", "Period-end balances", true, "No unusual balance.", periodEndBalances...),
		{ID: "a.cogs", Topic: "Goods issued vs cost of goods sold (155, 156 vs 632)", Requires: NeedFinancialStatements, Check: checkCOGS},
		balanceRule("a.bad-debt", "Doubtful debt provision (2293)", false, "No doubtful debt provision movement.", balanceCheck{
			Topic: "Doubtful debt provision (2293)",
			A:     field{"ps_no_ct2293", "provision charged"},
			B:     field{"ps_co_ct2293", "provision reversed"},
			Hint:  "A doubtful debt provision moved during the year. Check that it matches changes in the related receivables.",
		}),
		balanceRule("a.provisions", "Accruals and provisions", false, "No accrual or provision balance.", provisionBalances...),
		balanceRule("a.disposals", "Fixed asset disposal and scrap sales", false, "No other expenses recorded.", balanceCheck{
			Topic:   "Fixed asset disposal and scrap sales",
			A:       field{"ps_co_ct711", "other income"},
			B:       field{"ps_no_ct811", "other expenses"},
			Trigger: []string{"ps_no_ct811"},
			Hint:    "Other expenses were recorded. Request the detail of accounts 711 and 811 to check income from asset disposals and scrap sales.",
		}),
	}
}

var periodEndBalances = []balanceCheck{
	{
		Topic: "Credit balance of account 131",
		A:     field{"sdck_co_ct131", "closing credit 131"},
		Hint:  "If these are customer prepayments check the contracts; goods already delivered must be recognised as taxable revenue.",
	},
	{
		Topic: "Credit balance of account 337 (construction contracts)",
		A:     field{"sdck_co_ct337", "closing credit 337"},
		Hint:  "Check contracts and progress so revenue is recognised for completed stages.",
	},
	{
		Topic: "Credit balance of account 3387 (unearned revenue)",
		A:     field{"sdck_co_ct3387", "closing credit 3387"},
		Hint:  "Goods delivered, property handed over or completed construction stages must be recognised as taxable revenue.",
	},
	{
		Topic: "Debit balance of account 157 (goods on consignment)",
		A:     field{"sdck_no_ct157", "closing debit 157"},
		Hint:  "Goods already sent to customers must be recognised as taxable revenue.",
	},
	{
		Topic: "Debit balance of account 136 (intercompany receivables)",
		A:     field{"sdck_no_ct136", "closing debit 136"},
		Hint:  "Proceeds of intercompany sales must be recognised as taxable revenue.",
	},
	{
		Topic: "Debit balance of account 138 (other receivables)",
		A:     field{"sdck_no_ct138", "closing debit 138"},
		Hint:  "Check the detail of other receivables; trading transactions must be recognised as revenue.",
	},
	{
		Topic: "Credit balance of account 138 (other payables)",
		A:     field{"sdck_co_ct138", "closing credit 138"},
		Hint:  "Check the detail of overpayments received; trading transactions must be recognised as revenue.",
	},
}

var provisionBalances = []balanceCheck{
	{
		Topic: "Credit balance of account 335 (accrued expenses)",
		A:     field{"sdck_co_ct335", "closing credit 335"},
		Hint:  "Check the detail, in particular expired construction warranty provisions that were never reversed.",
	},
	{
		Topic: "Credit balance of account 352 (provisions)",
		A:     field{"sdck_co_ct352", "closing credit 352"},
		Hint:  "Check provisions that were made but not used, or not fully used, and never reversed.",
	},
	{
		Topic: "Debit balance of account 242 (prepaid expenses)",
		A:     field{"sdck_no_ct242", "closing debit 242"},
		Hint:  "Check that prepaid expenses are allocated to the correct periods.",
	},
}

func cashInterestRule(id, topic string) Rule {
	return Rule{
		ID:       id,
		Topic:    topic,
		Requires: NeedFinancialStatements,
		Check: func(c *Context) []model.Finding {
			rec := c.statements()
			cash := rec.Amount("scn_ct110")
			interest := rec.Amount("kqkd_nn_ct23")
			status := model.StatusOK
			if cash.GreaterThan(c.Thresholds.CashInterest) && interest.IsPositive() {
				status = model.StatusWarning
			}
			return []model.Finding{flag(id, topic,
				model.Amount(cash, "cash, item 110"), model.Amount(interest, "interest expense, item 23"),
				status, "Assess why the business borrows while holding a large cash balance.")}
		},
	}
}

func checkReceivables(c *Context) []model.Finding {
	rec := c.statements()
	a := field{"ps_no_ct131", "debit 131"}.figure(rec)
	b := sum(rec, "credit 511+3331+711", "ps_co_ct511", "ps_co_ct3331", "ps_co_ct711")
	hint := bySign(a.Value.Sub(b.Value),
		"Debit 131 exceeds credit 511+3331+711: risk of unrecorded revenue.",
		"Debit 131 is below credit 511+3331+711: request the contra-account detail.",
		"OK")
	return []model.Finding{compare("a.receivables", "Debit flows of account 131", a, b, exact, model.StatusMatch, hint)}
}

func checkRevenueFlows(c *Context) []model.Finding {
	rec := c.statements()
	return []model.Finding{compare("a.revenue", "Income statement revenue vs trial balance",
		field{"kqkd_nn_ct01", "income statement"}.figure(rec),
		sum(rec, "credit 511+512", "ps_co_ct511", "ps_co_ct512"),
		exact, model.StatusMatch, "Reconcile revenue between the statements.")}
}

func checkWIPToFinishedGoods(c *Context) []model.Finding {
	rec := c.statements()
	a := field{"ps_no_ct155", "debit 155"}.figure(rec)
	b := field{"ps_co_ct154", "credit 154"}.figure(rec)
	hint := bySign(a.Value.Sub(b.Value),
		"Debit 155 exceeds credit 154: reconcile with debit 632 and credit 511/512.",
		"Credit 154 exceeds debit 155: goods may have been sold or given away without entering stock or revenue.",
		"OK")
	return []model.Finding{compare("a.wip-finished-goods", "Work in process vs finished goods (154 vs 155)", a, b, exact, model.StatusMatch, hint)}
}

func checkProductionCost(c *Context) []model.Finding {
	rec := c.statements()
	return []model.Finding{compare("a.production-cost", "Production cost roll-up (154 vs 621, 622, 627)",
		field{"ps_co_ct154", "credit 154"}.figure(rec),
		sum(rec, "debit 621+622+627", "ps_no_ct621", "ps_no_ct622", "ps_no_ct627"),
		exact, model.StatusMatch, "Check that production costs are transferred into account 154.")}
}

func checkSalesReturns(c *Context) []model.Finding {
	returns := field{"kqkd_nn_ct02", "revenue deductions"}.figure(c.statements())
	if returns.Value.IsPositive() {
		return []model.Finding{flag("a.sales-returns", "Sales returns", returns, model.Missing(""), model.StatusWarning,
			"Goods were returned. Request the credit detail of account 632 to check that cost of sales was reduced.")}
	}
	return []model.Finding{flag("a.sales-returns", "Sales returns", returns, model.Missing(""), model.StatusOK, "No sales returns.")}
}

func checkMaterials(c *Context) []model.Finding {
	rec := c.statements()
	a := field{"ps_co_ct152", "credit 152"}.figure(rec)
	b := field{"ps_no_ct621", "debit 621"}.figure(rec)
	hint := bySign(a.Value.Sub(b.Value),
		"Credit 152 exceeds debit 621: materials may have been bartered or sold without revenue.",
		"Credit 152 is below debit 621: material expense may lack matching stock issues or invoices.",
		"OK")
	return []model.Finding{compare("a.materials", "Materials issued vs material expense (152 vs 621)", a, b, exact, model.StatusMatch, hint)}
}

// checkInventory combines two independent signals. Both messages are kept
// in order when both fire.
func checkInventory(c *Context) []model.Finding {
	rec := c.statements()
	opening := rec.Amount("sdn_ct140")
	closing := rec.Amount("scn_ct140")
	revenue := rec.Amount("kqkd_nn_ct01")

	var hint string
	if revenue.IsPositive() && closing.GreaterThan(revenue.Mul(c.Thresholds.InventoryRevenueMultiple)) {
		hint = fmt.Sprintf("Closing inventory (%s) is %s times revenue.",
			model.FormatAmount(closing), closing.Div(revenue).StringFixed(1))
	}
	if opening.IsPositive() && closing.GreaterThanOrEqual(opening) {
		if hint != "" {
			hint += " "
		}
		hint += "Inventory did not decrease from the opening balance: possible fictitious or slow-moving stock."
	}

	status := model.StatusOK
	if hint != "" {
		status = model.StatusWarning
	} else {
		hint = "No inventory anomaly."
	}
	return []model.Finding{{
		Rule:       "a.inventory",
		Topic:      "Fictitious inventory risk",
		A:          model.Amount(closing, "closing inventory"),
		B:          model.Amount(opening, "opening inventory"),
		Difference: model.FormatAmount(closing.Sub(opening)),
		Status:     status,
		Suggestion: hint,
	}}
}

func checkCOGS(c *Context) []model.Finding {
	rec := c.statements()
	a := sum(rec, "credit 155+156", "ps_co_ct155", "ps_co_ct156")
	b := field{"ps_no_ct632", "debit 632"}.figure(rec)
	hint := bySign(a.Value.Sub(b.Value),
		"Goods issued exceed cost of sales: goods consumed or given away without cost of sales, or returns that did not reduce it.",
		"Goods issued are below cost of sales: possibly an inventory write-down or drop shipments; reconcile with credit 511/512.",
		"OK")
	return []model.Finding{compare("a.cogs", "Goods issued vs cost of goods sold (155, 156 vs 632)", a, b, exact, model.StatusMatch, hint)}
}
