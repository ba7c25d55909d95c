package props

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerport-dev/ledgerport/internal/model"
	"github.com/ledgerport-dev/ledgerport/internal/prices"
)

// Ledger is the record-factory collaborator drafts are created against.
// Transactions stay in an open edit until committed or rolled back.
type Ledger interface {
	NewTransaction() *model.Transaction
	Commit(tx *model.Transaction)
	Rollback(tx *model.Transaction)
}

// AccountResolver maps raw account strings from the import file to
// accounts, or nil when no account matches.
type AccountResolver interface {
	Resolve(raw string) *model.Account
}

// PriceSource looks up the recorded price nearest in time for a commodity
// pair, in either orientation.
type PriceSource interface {
	NearestInTime(a, b *model.Commodity, at time.Time) *prices.Price
}

// DraftTransaction exclusively owns an in-progress transaction between
// header creation and hand-off. The deferred transfer fields are populated
// when a split could not complete its transfer side; the downstream
// matcher uses them to finish the balancing split interactively.
//
// A draft that is released before being committed rolls the open edit
// back, so discarding a draft at any point before Commit is safe.
type DraftTransaction struct {
	Tx *model.Transaction

	Price           *decimal.Decimal
	TransferAction  *string
	TransferMemo    *string
	TransferAmount  *decimal.Decimal
	TransferAccount *model.Account
	TransferRec     *model.ReconcileState
	TransferRecDate *time.Time
	VoidReason      *string

	ledger    Ledger
	committed bool
}

func newDraft(ledger Ledger, tx *model.Transaction) *DraftTransaction {
	return &DraftTransaction{Tx: tx, ledger: ledger}
}

// Commit hands the transaction over to the ledger. Further Release calls
// become no-ops.
func (d *DraftTransaction) Commit() {
	if d.Tx == nil || d.committed {
		return
	}
	d.ledger.Commit(d.Tx)
	d.committed = true
}

// Committed reports whether the draft was handed over.
func (d *DraftTransaction) Committed() bool {
	return d.committed
}

// Release rolls back the open edit unless the draft was committed. Safe to
// call more than once.
func (d *DraftTransaction) Release() {
	if d.Tx == nil || d.committed {
		return
	}
	d.ledger.Rollback(d.Tx)
	d.Tx = nil
}

// HasDeferredTransfer reports whether transfer-side data awaits completion
// by the downstream matcher.
func (d *DraftTransaction) HasDeferredTransfer() bool {
	return d.TransferAccount != nil
}
