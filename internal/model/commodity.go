package model

// CurrencyNamespace is the namespace reserved for ISO and national currencies.
const CurrencyNamespace = "CURRENCY"

// Commodity is anything accounts can be denominated in: a currency, a stock,
// a fund. Identified by (namespace, mnemonic).
type Commodity struct {
	Namespace string
	Mnemonic  string
	FullName  string // display name, e.g. "US Dollar"
	Fraction  int    // smallest unit per whole, e.g. 100 for cents
}

// UniqueName returns the table-wide identifier, e.g. "CURRENCY::USD".
func (c *Commodity) UniqueName() string {
	return c.Namespace + "::" + c.Mnemonic
}

// IsCurrency reports whether the commodity lives in the currency namespace.
func (c *Commodity) IsCurrency() bool {
	return c != nil && c.Namespace == CurrencyNamespace
}

// Equiv reports whether two commodities are interchangeable for valuation.
func (c *Commodity) Equiv(other *Commodity) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Namespace == other.Namespace && c.Mnemonic == other.Mnemonic
}
