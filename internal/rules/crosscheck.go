package rules

import (
	"github.com/cleared-dev/taxaudit/internal/metrics"
	"github.com/cleared-dev/taxaudit/internal/model"
)

// CrossChecks returns the cross-declaration and ledger rules in evaluation
// order.
func CrossChecks() []Rule {
	return []Rule{
		{
			ID:       "revenue-vat-cit",
			Topic:    "VAT revenue vs CIT revenue",
			Requires: NeedVATSummary | NeedCIT,
			Missing:  "Upload both the VAT returns for the year and the CIT settlement.",
			Check:    checkRevenueVATvsCIT,
		},
		{
			ID:       "revenue-sales-ledger",
			Topic:    "Declared revenue vs sales ledger",
			Requires: NeedSalesLedger,
			Missing:  "Upload the sales invoice ledger to reconcile declared revenue.",
			Check:    checkSalesLedger,
		},
		{
			ID:       "pit-withholding",
			Topic:    "PIT withheld: periodic returns vs annual settlement",
			Requires: NeedPITSettlement | NeedPITWithholding,
			Missing:  "Upload both the periodic 05/KK-TNCN returns and the 05/QTT-TNCN settlement.",
			Check:    checkPITWithholding,
		},
		{
			ID:       "input-vat",
			Topic:    "Input VAT",
			Requires: NeedVATForm | NeedPurchaseLedger,
			Missing:  "Upload both the VAT returns and the purchase invoice ledger.",
			Check:    checkInputVAT,
		},
	}
}

// citRevenue is appendix revenue plus other income of the latest CIT
// settlement.
func (c *Context) citRevenue() model.Figure {
	v := metrics.Value(c.cit, metrics.CITRevenue).Add(metrics.Value(c.cit, metrics.CITOtherIncome))
	return model.Amount(v, "CIT settlement")
}

func (c *Context) vatRevenue() model.Figure {
	v, _ := c.Summaries.VAT.Total(metrics.VATTaxableRevenue)
	return model.Amount(v, "VAT returns")
}

func checkRevenueVATvsCIT(c *Context) []model.Finding {
	return []model.Finding{compare("revenue-vat-cit", "VAT revenue vs CIT revenue",
		c.citRevenue(), c.vatRevenue(), exact, model.StatusMatch,
		"Reconcile the revenue declared on the CIT settlement with taxable sales on the VAT returns.")}
}

func checkSalesLedger(c *Context) []model.Finding {
	ledger := model.Amount(c.Sales.PreTax, "sales ledger")
	tol := c.Thresholds.LedgerTolerance

	var out []model.Finding
	if vat := c.vatRevenue(); c.Has(NeedVATSummary) && vat.Value.IsPositive() {
		out = append(out, compare("revenue-sales-ledger", "VAT revenue vs sales ledger",
			vat, ledger, tol, model.StatusMatch,
			"Check the gap between taxable sales on the VAT returns and the pre-tax total of issued invoices."))
	}
	if c.Has(NeedCIT) {
		if cit := c.citRevenue(); cit.Value.IsPositive() {
			out = append(out, compare("revenue-sales-ledger", "CIT revenue vs sales ledger",
				cit, ledger, tol, model.StatusMatch,
				"Check the gap between revenue on the CIT settlement and the pre-tax total of issued invoices."))
		}
	}
	if len(out) == 0 {
		out = append(out, insufficient("revenue-sales-ledger", "Declared revenue vs sales ledger",
			"No declared VAT or CIT revenue to compare with the sales ledger."))
	}
	return out
}

func checkPITWithholding(c *Context) []model.Finding {
	periodic, _ := c.Summaries.PITWithholding.Total(metrics.PITWWithheld)
	annual := metrics.Value(c.pitSettlement, metrics.PITSWithheld)
	return []model.Finding{compare("pit-withholding", "PIT withheld: periodic returns vs annual settlement",
		model.Amount(periodic, "all periods"), model.Amount(annual, "annual settlement"),
		exact, model.StatusMatch,
		"Reconcile tax withheld on the 05/KK-TNCN returns with item [31] of the 05/QTT-TNCN settlement.")}
}

func checkInputVAT(c *Context) []model.Finding {
	purchases := metrics.Sum(c.vatForms, metrics.VATPurchaseValue)
	inputTax := metrics.Sum(c.vatForms, metrics.VATPurchaseTax)
	deductible := metrics.Sum(c.vatForms, metrics.VATDeductible)
	tol := c.Thresholds.LedgerTolerance

	return []model.Finding{
		compare("input-vat", "Input VAT: purchases, returns vs ledger",
			model.Amount(purchases, "VAT returns [23]"), model.Amount(c.Purchase.PreTax, "purchase ledger"),
			tol, model.StatusMatch,
			"Reconcile purchases on the VAT returns with the pre-tax total of the purchase invoice ledger."),
		compare("input-vat", "Input VAT: input tax vs deductible tax on returns",
			model.Amount(inputTax, "VAT returns [24]"), model.Amount(deductible, "VAT returns [25]"),
			exact, model.StatusOK,
			"Explain why part of the input VAT was not deducted."),
		compare("input-vat", "Input VAT: deductible tax, returns vs ledger",
			model.Amount(deductible, "VAT returns [25]"), model.Amount(c.Purchase.Tax, "purchase ledger"),
			tol, model.StatusMatch,
			"Reconcile deductible VAT on the returns with the tax total of the purchase invoice ledger."),
	}
}
