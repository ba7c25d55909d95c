// Package importer drives the row-by-row import loop: it feeds raw cells
// into the property accumulators, groups rows into logical transactions,
// and materializes drafts against the book.
package importer

import (
	"fmt"

	"github.com/ledgerport-dev/ledgerport/internal/accounts"
	"github.com/ledgerport-dev/ledgerport/internal/book"
	"github.com/ledgerport-dev/ledgerport/internal/model"
	"github.com/ledgerport-dev/ledgerport/internal/props"
)

// Options configure one import run.
type Options struct {
	Columns          []props.PropertyType
	DateFormat       props.DateFormat
	CurrencyFormat   props.CurrencyFormat
	MultiSplit       bool
	FallbackCurrency *model.Commodity
	SkipRows         int
}

// Importer imports pre-tokenized rows into a book.
type Importer struct {
	book     *book.Book
	resolver *accounts.Resolver
	opts     Options
}

// New creates an Importer.
func New(b *book.Book, resolver *accounts.Resolver, opts Options) (*Importer, error) {
	if len(opts.Columns) == 0 {
		return nil, fmt.Errorf("no column mapping given")
	}
	if opts.FallbackCurrency == nil {
		return nil, fmt.Errorf("no fallback currency given")
	}
	return &Importer{book: b, resolver: resolver, opts: opts}, nil
}

// RowError collects the problems of one input row (1-based).
type RowError struct {
	Row      int
	Messages []string
}

// Result summarizes an import run. Deferred drafts hold open edits with
// transfer hints or imbalances the downstream matcher must complete; the
// caller owns them and must Commit or Release each one.
type Result struct {
	Committed []*model.Transaction
	Deferred  []*props.DraftTransaction
	RowErrors []RowError
}

type pendingSplit struct {
	row   int
	split *props.PreSplit
}

type pendingTrans struct {
	row    int
	trans  *props.PreTrans
	splits []pendingSplit
}

// ImportRows runs the import over all rows. Rows with errors are skipped
// and reported; the run itself never fails row-by-row.
func (imp *Importer) ImportRows(rows [][]string) *Result {
	res := &Result{}

	groups := imp.collectRows(rows, res)
	for _, g := range groups {
		imp.materialize(g, res)
	}
	return res
}

// collectRows parses each row into fresh accumulators and groups rows into
// logical transactions. In multi-split mode a row whose transaction
// properties are part of the current group's adds a split to it; any other
// row starts a new group.
func (imp *Importer) collectRows(rows [][]string, res *Result) []*pendingTrans {
	var groups []*pendingTrans
	var current *pendingTrans

	for idx, row := range rows {
		rowNum := idx + 1
		if rowNum <= imp.opts.SkipRows || emptyRow(row) {
			continue
		}

		trans := props.NewPreTrans(imp.opts.DateFormat, imp.opts.MultiSplit, imp.book.Commodities)
		split := props.NewPreSplit(imp.opts.DateFormat, imp.opts.CurrencyFormat, imp.resolver, imp.book.Prices)

		var msgs []string
		for i, cell := range row {
			if i >= len(imp.opts.Columns) {
				break
			}
			prop := imp.opts.Columns[i]
			var err error
			switch {
			case prop == props.PropNone:
				continue
			case prop.IsTransactionProp():
				err = trans.Set(prop, cell)
			case prop.IsMultiCol():
				err = split.Add(prop, cell)
			default:
				err = split.Set(prop, cell)
			}
			if err != nil {
				msgs = append(msgs, err.Error())
			}
		}
		if len(msgs) > 0 {
			res.RowErrors = append(res.RowErrors, RowError{Row: rowNum, Messages: msgs})
			continue
		}

		if imp.opts.MultiSplit && current != nil && trans.IsPartOf(current.trans) {
			current.splits = append(current.splits, pendingSplit{row: rowNum, split: split})
			continue
		}

		if missing := trans.VerifyEssentials(); len(missing) > 0 {
			res.RowErrors = append(res.RowErrors, RowError{Row: rowNum, Messages: missing})
			// This row tried to start a new group. Continuation rows that
			// follow it belong to the failed group, not the previous one.
			current = nil
			continue
		}
		current = &pendingTrans{
			row:    rowNum,
			trans:  trans,
			splits: []pendingSplit{{row: rowNum, split: split}},
		}
		groups = append(groups, current)
	}
	return groups
}

// materialize turns one grouped transaction into book records: balanced
// transactions commit, incomplete ones stay deferred for the matcher, and
// splitless ones roll back.
func (imp *Importer) materialize(g *pendingTrans, res *Result) {
	draft := g.trans.CreateTransaction(imp.book, imp.opts.FallbackCurrency)
	if draft == nil {
		res.RowErrors = append(res.RowErrors, RowError{
			Row:      g.row,
			Messages: []string{"transaction could not be created"},
		})
		return
	}

	for _, ps := range g.splits {
		if missing := ps.split.VerifyEssentials(); len(missing) > 0 {
			res.RowErrors = append(res.RowErrors, RowError{Row: ps.row, Messages: missing})
			continue
		}
		ps.split.CreateSplit(draft)
	}

	if len(draft.Tx.Splits) == 0 {
		res.RowErrors = append(res.RowErrors, RowError{
			Row:      g.row,
			Messages: []string{"no splits could be created"},
		})
		draft.Release()
		return
	}

	if draft.VoidReason != nil {
		draft.Tx.VoidReason = *draft.VoidReason
	}

	if draft.HasDeferredTransfer() || !draft.Tx.ValueImbalance().IsZero() {
		res.Deferred = append(res.Deferred, draft)
		return
	}

	draft.Commit()
	res.Committed = append(res.Committed, draft.Tx)
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
