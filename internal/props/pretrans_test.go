package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerport-dev/ledgerport/internal/accounts"
	"github.com/ledgerport-dev/ledgerport/internal/book"
	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/model"
	"github.com/ledgerport-dev/ledgerport/internal/prices"
)

func testLedger(t *testing.T) (*book.Book, *commodities.Table) {
	t.Helper()
	tbl := commodities.NewTable().WithDefaultCurrencies()
	usd := tbl.LookupUnique("CURRENCY::USD")
	eur := tbl.LookupUnique("CURRENCY::EUR")
	svc := accounts.NewService([]*model.Account{
		{FullName: "Assets:Bank:Checking", Type: model.AccountTypeAsset, Commodity: usd},
		{FullName: "Assets:Bank:Euro Savings", Type: model.AccountTypeAsset, Commodity: eur},
		{FullName: "Expenses:Groceries", Type: model.AccountTypeExpense, Commodity: usd},
	})
	return book.New(svc, tbl, prices.NewDB()), tbl
}

func usdOf(tbl *commodities.Table) *model.Commodity {
	return tbl.LookupUnique("CURRENCY::USD")
}

func TestPreTransSetAndEssentials(t *testing.T) {
	_, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)

	msgs := p.VerifyEssentials()
	assert.Len(t, msgs, 2)

	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "Grocery run"))
	assert.Empty(t, p.VerifyEssentials())

	// Clearing a mandatory field resurfaces it in essentials, not as a
	// reset-time error.
	p.Reset(PropDescription)
	assert.Empty(t, p.Errors())
	assert.Len(t, p.VerifyEssentials(), 1)
}

func TestPreTransMandatoryEmpty(t *testing.T) {
	_, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)

	err := p.Set(PropDate, "")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PropDate, perr.Prop)
	assert.Contains(t, err.Error(), "Date: ")
	assert.Contains(t, p.Errors(), PropDate)

	// Multi-split mode allows an empty date.
	p.SetMultiSplit(true)
	assert.NoError(t, p.Set(PropDate, ""))
	assert.NoError(t, p.Set(PropDescription, ""))
}

func TestPreTransBadDateRecorded(t *testing.T) {
	_, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)

	require.Error(t, p.Set(PropDate, "not-a-date"))
	assert.Contains(t, p.Errors(), PropDate)

	// A later good assignment clears the recorded error.
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	assert.Empty(t, p.Errors())
}

func TestPreTransSplitPropIgnored(t *testing.T) {
	_, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)

	// Assigning a split-scope property is a caller bug: no error, no state.
	assert.NoError(t, p.Set(PropAmount, "100.00"))
	assert.Empty(t, p.Errors())
}

func TestPreTransCreateTransaction(t *testing.T) {
	b, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "Grocery run"))
	require.NoError(t, p.Set(PropNum, "42"))
	require.NoError(t, p.Set(PropNotes, "weekly"))

	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	require.NotNil(t, draft.Tx)
	assert.Equal(t, "Grocery run", draft.Tx.Description)
	assert.Equal(t, "42", draft.Tx.Num)
	assert.Equal(t, "weekly", draft.Tx.Notes)
	assert.Equal(t, "USD", draft.Tx.Currency.Mnemonic)
	assert.Equal(t, 14, draft.Tx.PostedDate.Day())
	assert.Equal(t, 1, b.OpenEdits())

	// Materialization is idempotent.
	assert.Nil(t, p.CreateTransaction(b, usdOf(tbl)))
	assert.Equal(t, 1, b.OpenEdits())
}

func TestPreTransCreateUsesAssignedCurrency(t *testing.T) {
	b, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "FX purchase"))
	require.NoError(t, p.Set(PropCommodity, "EUR"))

	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	assert.Equal(t, "EUR", draft.Tx.Currency.Mnemonic)
	draft.Release()
}

func TestPreTransCreateNonCurrencyCommodityFallsBack(t *testing.T) {
	b, tbl := testLedger(t)
	tbl.Add(&model.Commodity{Namespace: "NASDAQ", Mnemonic: "AAPL"})
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "Stock buy"))
	require.NoError(t, p.Set(PropCommodity, "AAPL"))

	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	assert.Equal(t, "USD", draft.Tx.Currency.Mnemonic)
	draft.Release()
}

func TestPreTransCreateDeclinesWithoutEssentials(t *testing.T) {
	b, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))

	assert.Nil(t, p.CreateTransaction(b, usdOf(tbl)))
	assert.Equal(t, 0, b.OpenEdits())

	// Not marked created: completing the bag still works.
	require.NoError(t, p.Set(PropDescription, "late"))
	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	draft.Release()
}

func TestDraftReleaseRollsBack(t *testing.T) {
	b, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "drop me"))

	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	assert.Equal(t, 1, b.OpenEdits())

	draft.Release()
	assert.Equal(t, 0, b.OpenEdits())
	assert.Empty(t, b.Transactions())
	assert.Nil(t, draft.Tx)

	// Release after release stays safe.
	draft.Release()
}

func TestDraftCommit(t *testing.T) {
	b, tbl := testLedger(t)
	p := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, p.Set(PropDate, "2025-03-14"))
	require.NoError(t, p.Set(PropDescription, "keep me"))

	draft := p.CreateTransaction(b, usdOf(tbl))
	require.NotNil(t, draft)
	draft.Commit()
	assert.True(t, draft.Committed())
	require.Len(t, b.Transactions(), 1)

	// Release after commit must not roll back.
	draft.Release()
	assert.Len(t, b.Transactions(), 1)
	assert.NotNil(t, draft.Tx)
}

func TestIsPartOf(t *testing.T) {
	_, tbl := testLedger(t)

	parent := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, parent.Set(PropDate, "2025-03-14"))
	require.NoError(t, parent.Set(PropDescription, "Grocery run"))

	// An all-empty bag belongs to any error-free parent.
	empty := NewPreTrans(DateYMD, false, tbl)
	assert.True(t, empty.IsPartOf(parent))
	assert.False(t, empty.IsPartOf(nil))

	// Matching values belong; conflicting values don't.
	same := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, same.Set(PropDate, "2025-03-14"))
	assert.True(t, same.IsPartOf(parent))

	other := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, other.Set(PropDate, "2025-03-15"))
	assert.False(t, other.IsPartOf(parent))

	diffDesc := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, diffDesc.Set(PropDescription, "Something else"))
	assert.False(t, diffDesc.IsPartOf(parent))
}

func TestIsPartOfErrorBearingParent(t *testing.T) {
	_, tbl := testLedger(t)

	parent := NewPreTrans(DateYMD, false, tbl)
	require.NoError(t, parent.Set(PropDate, "2025-03-14"))
	require.NoError(t, parent.Set(PropDescription, "Grocery run"))
	require.Error(t, parent.Set(PropCommodity, "ZZZ"))

	// A parent with errors can never anchor a group, even for an empty bag.
	empty := NewPreTrans(DateYMD, false, tbl)
	assert.False(t, empty.IsPartOf(parent))
}
