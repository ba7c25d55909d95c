package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconcileState is the single-letter reconcile flag carried by a split.
type ReconcileState string

const (
	NotReconciled ReconcileState = "n"
	Cleared       ReconcileState = "c"
	Reconciled    ReconcileState = "y"
	Frozen        ReconcileState = "f"
	Voided        ReconcileState = "v"
)

// Split is one leg of a double-entry transaction. Amount is denominated in
// the split account's commodity, Value in the owning transaction's currency.
// The two differ whenever those commodities differ.
type Split struct {
	Account       *Account
	Amount        decimal.Decimal
	Value         decimal.Decimal
	Memo          string
	Action        string
	Reconcile     ReconcileState
	ReconcileDate time.Time // meaningful only when Reconcile == Reconciled
}

// Transaction is a double-entry transaction header plus its splits.
type Transaction struct {
	ID          string
	Currency    *Commodity
	PostedDate  time.Time
	Num         string
	Description string
	Notes       string
	VoidReason  string
	Splits      []*Split
}

// AddSplit attaches a split to the transaction.
func (t *Transaction) AddSplit(s *Split) {
	t.Splits = append(t.Splits, s)
}

// ValueImbalance returns the sum of split values. Zero means the
// transaction balances in its own currency.
func (t *Transaction) ValueImbalance() decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.Splits {
		total = total.Add(s.Value)
	}
	return total
}
