package commodities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerport-dev/ledgerport/internal/model"
)

func TestLookupUnique(t *testing.T) {
	tbl := NewTable().WithDefaultCurrencies()

	usd := tbl.LookupUnique("CURRENCY::USD")
	require.NotNil(t, usd)
	assert.Equal(t, "USD", usd.Mnemonic)

	assert.Nil(t, tbl.LookupUnique("CURRENCY::XXX"))
}

func TestLookupByNamespace(t *testing.T) {
	tbl := NewTable().WithDefaultCurrencies()
	tbl.Add(&model.Commodity{Namespace: "NASDAQ", Mnemonic: "AAPL", FullName: "Apple Inc"})

	assert.NotNil(t, tbl.Lookup("CURRENCY", "EUR"))
	assert.NotNil(t, tbl.Lookup("NASDAQ", "AAPL"))
	assert.Nil(t, tbl.Lookup("NYSE", "AAPL"))
}

func TestAddReplaces(t *testing.T) {
	tbl := NewTable()
	tbl.Add(&model.Commodity{Namespace: "FUND", Mnemonic: "VTSAX", FullName: "old"})
	tbl.Add(&model.Commodity{Namespace: "FUND", Mnemonic: "VTSAX", FullName: "new"})

	got := tbl.Lookup("FUND", "VTSAX")
	require.NotNil(t, got)
	assert.Equal(t, "new", got.FullName)
}

func TestNamespacesDeterministic(t *testing.T) {
	tbl := NewTable()
	tbl.Add(&model.Commodity{Namespace: "NYSE", Mnemonic: "T"})
	tbl.Add(&model.Commodity{Namespace: "CURRENCY", Mnemonic: "USD"})
	tbl.Add(&model.Commodity{Namespace: "FUND", Mnemonic: "VTSAX"})

	first := tbl.Namespaces()
	assert.Equal(t, []string{"CURRENCY", "FUND", "NYSE"}, first)

	// Repeated enumeration yields the same order.
	assert.Equal(t, first, tbl.Namespaces())
}
