// Package commodities provides the in-memory commodity table the import
// core resolves commodity strings against.
package commodities

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// Table indexes commodities by unique name and by (namespace, mnemonic).
type Table struct {
	byUnique    map[string]*model.Commodity
	byNamespace map[string]map[string]*model.Commodity
}

// NewTable creates an empty commodity table.
func NewTable() *Table {
	return &Table{
		byUnique:    make(map[string]*model.Commodity),
		byNamespace: make(map[string]map[string]*model.Commodity),
	}
}

// Add registers a commodity, replacing any existing entry with the same
// namespace and mnemonic.
func (t *Table) Add(c *model.Commodity) {
	t.byUnique[c.UniqueName()] = c
	ns, ok := t.byNamespace[c.Namespace]
	if !ok {
		ns = make(map[string]*model.Commodity)
		t.byNamespace[c.Namespace] = ns
	}
	ns[c.Mnemonic] = c
}

// LookupUnique returns the commodity with the given unique name
// ("NAMESPACE::MNEMONIC"), or nil.
func (t *Table) LookupUnique(uniqueName string) *model.Commodity {
	return t.byUnique[uniqueName]
}

// Lookup returns the commodity for a namespace and mnemonic, or nil.
func (t *Table) Lookup(namespace, mnemonic string) *model.Commodity {
	ns, ok := t.byNamespace[namespace]
	if !ok {
		return nil
	}
	return ns[mnemonic]
}

// Namespaces returns all namespaces in collated order. Lookup fallbacks
// iterate this list, so the order must be stable across runs.
func (t *Table) Namespaces() []string {
	names := make([]string, 0, len(t.byNamespace))
	for ns := range t.byNamespace {
		names = append(names, ns)
	}
	collate.New(language.Und).SortStrings(names)
	return names
}

// WithDefaultCurrencies seeds the table with a starter set of ISO
// currencies and returns it.
func (t *Table) WithDefaultCurrencies() *Table {
	defaults := []struct {
		mnemonic string
		fullName string
	}{
		{"USD", "US Dollar"},
		{"EUR", "Euro"},
		{"GBP", "Pound Sterling"},
		{"JPY", "Japanese Yen"},
		{"CAD", "Canadian Dollar"},
		{"AUD", "Australian Dollar"},
		{"CHF", "Swiss Franc"},
	}
	for _, d := range defaults {
		fraction := 100
		if d.mnemonic == "JPY" {
			fraction = 1
		}
		t.Add(&model.Commodity{
			Namespace: model.CurrencyNamespace,
			Mnemonic:  d.mnemonic,
			FullName:  d.fullName,
			Fraction:  fraction,
		})
	}
	return t
}
