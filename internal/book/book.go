// Package book owns the record factory and the edit scope for in-progress
// transactions. A transaction created with NewTransaction is held open
// until it is either committed into the book or rolled back; rolled-back
// transactions leave no trace.
package book

import (
	"github.com/ledgerport-dev/ledgerport/internal/accounts"
	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/id"
	"github.com/ledgerport-dev/ledgerport/internal/model"
	"github.com/ledgerport-dev/ledgerport/internal/prices"
)

// Book bundles the collaborators an import session works against plus the
// committed transactions.
type Book struct {
	Accounts    *accounts.Service
	Commodities *commodities.Table
	Prices      *prices.DB

	transactions []*model.Transaction
	open         map[*model.Transaction]bool
}

// New creates a Book over the given collaborators.
func New(accts *accounts.Service, table *commodities.Table, priceDB *prices.DB) *Book {
	return &Book{
		Accounts:    accts,
		Commodities: table,
		Prices:      priceDB,
		open:        make(map[*model.Transaction]bool),
	}
}

// NewTransaction creates an empty transaction in an open edit. The caller
// must eventually Commit or Rollback it.
func (b *Book) NewTransaction() *model.Transaction {
	tx := &model.Transaction{ID: id.New()}
	b.open[tx] = true
	return tx
}

// Commit files an open transaction into the book. Committing a
// transaction the book does not hold open is a no-op.
func (b *Book) Commit(tx *model.Transaction) {
	if !b.open[tx] {
		return
	}
	delete(b.open, tx)
	b.transactions = append(b.transactions, tx)
}

// Rollback discards an open transaction.
func (b *Book) Rollback(tx *model.Transaction) {
	delete(b.open, tx)
}

// Transactions returns all committed transactions.
func (b *Book) Transactions() []*model.Transaction {
	return b.transactions
}

// OpenEdits returns the number of transactions still in an open edit.
func (b *Book) OpenEdits() int {
	return len(b.open)
}
