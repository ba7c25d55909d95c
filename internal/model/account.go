package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Account represents a row in chart-of-accounts.csv. Accounts are addressed
// by colon-separated full name, e.g. "Assets:Bank:Checking".
type Account struct {
	FullName    string
	Type        AccountType
	Commodity   *Commodity
	Description string
}

// Name returns the last segment of the full name.
func (a *Account) Name() string {
	full := a.FullName
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ':' {
			return full[i+1:]
		}
	}
	return full
}
