package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

func testTable() *commodities.Table {
	return commodities.NewTable().WithDefaultCurrencies()
}

func testChart(t *testing.T) *Service {
	t.Helper()
	tbl := testTable()
	usd := tbl.LookupUnique("CURRENCY::USD")
	eur := tbl.LookupUnique("CURRENCY::EUR")
	return NewService([]*model.Account{
		{FullName: "Assets:Bank:Checking", Type: model.AccountTypeAsset, Commodity: usd},
		{FullName: "Assets:Bank:Euro Savings", Type: model.AccountTypeAsset, Commodity: eur},
		{FullName: "Expenses:Groceries", Type: model.AccountTypeExpense, Commodity: usd},
	})
}

func TestLookupByFullName(t *testing.T) {
	svc := testChart(t)

	acct := svc.LookupByFullName("Assets:Bank:Checking")
	require.NotNil(t, acct)
	assert.Equal(t, "Checking", acct.Name())

	assert.Nil(t, svc.LookupByFullName("Assets:Bank:Nope"))
}

func TestByType(t *testing.T) {
	svc := testChart(t)
	assert.Len(t, svc.ByType(model.AccountTypeAsset), 2)
	assert.Len(t, svc.ByType(model.AccountTypeExpense), 1)
	assert.Empty(t, svc.ByType(model.AccountTypeEquity))
}

func TestReadAccounts(t *testing.T) {
	input := strings.Join([]string{
		"full_name,account_type,commodity,description",
		"Assets:Bank:Checking,asset,USD,Main checking",
		"Expenses:Groceries,expense,CURRENCY::USD,",
	}, "\n")

	accts, err := ReadAccounts(strings.NewReader(input), testTable())
	require.NoError(t, err)
	require.Len(t, accts, 2)
	assert.Equal(t, "Assets:Bank:Checking", accts[0].FullName)
	assert.Equal(t, "USD", accts[0].Commodity.Mnemonic)
	assert.Equal(t, "USD", accts[1].Commodity.Mnemonic)
}

func TestReadAccountsUnknownCommodity(t *testing.T) {
	input := strings.Join([]string{
		"full_name,account_type,commodity,description",
		"Assets:Bank:Checking,asset,ZZZ,",
	}, "\n")

	_, err := ReadAccounts(strings.NewReader(input), testTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown commodity")
}

func TestRoundTrip(t *testing.T) {
	svc := testChart(t)

	var sb strings.Builder
	require.NoError(t, WriteAccounts(&sb, svc.All()))

	accts, err := ReadAccounts(strings.NewReader(sb.String()), testTable())
	require.NoError(t, err)
	require.Len(t, accts, 3)
	assert.Equal(t, svc.All()[1].FullName, accts[1].FullName)
}

func TestResolverMappingWinsOverChart(t *testing.T) {
	svc := testChart(t)
	r := NewResolver(svc)

	groceries := svc.LookupByFullName("Expenses:Groceries")
	r.Map("Assets:Bank:Checking", groceries)

	// Session mapping takes precedence even when the raw string is also a
	// valid full name.
	assert.Same(t, groceries, r.Resolve("Assets:Bank:Checking"))
	assert.Same(t, groceries, r.Resolve("Expenses:Groceries"))
	assert.Nil(t, r.Resolve("SOME BANK MEMO TEXT"))
}
