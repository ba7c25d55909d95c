// Package prices holds the in-memory price database the import core uses
// to value splits whose account commodity differs from the transaction
// currency.
package prices

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// Price is one recorded quote: one unit of Commodity costs Value units of
// Currency at Time.
type Price struct {
	Commodity *model.Commodity
	Currency  *model.Commodity
	Value     decimal.Decimal
	Time      time.Time
}

// DB is an in-memory price database.
type DB struct {
	prices []*Price
}

// NewDB creates an empty price database.
func NewDB() *DB {
	return &DB{}
}

// Add records a price.
func (db *DB) Add(p *Price) {
	db.prices = append(db.prices, p)
}

// Len returns the number of recorded prices.
func (db *DB) Len() int {
	return len(db.prices)
}

// NearestInTime returns the recorded price closest in time to at that
// quotes the pair (a, b) in either orientation, or nil when no price for
// the pair exists. Callers must check the returned price's Currency to
// know which direction the quote runs.
func (db *DB) NearestInTime(a, b *model.Commodity, at time.Time) *Price {
	var best *Price
	var bestDelta time.Duration
	for _, p := range db.prices {
		forward := p.Commodity.Equiv(a) && p.Currency.Equiv(b)
		reverse := p.Commodity.Equiv(b) && p.Currency.Equiv(a)
		if !forward && !reverse {
			continue
		}
		delta := at.Sub(p.Time)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best = p
			bestDelta = delta
		}
	}
	return best
}
