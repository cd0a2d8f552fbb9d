package model

// AccountType is the class of a ledger account in the national chart.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeClosing   AccountType = "closing"
)

// Account is one row of the trial-balance chart.
type Account struct {
	Code string // "111", "3331"
	Name string
	Type AccountType
}
