package props

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerport-dev/ledgerport/internal/diag"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// PreSplit accumulates the properties of one split line. Amount-like
// properties additionally support Add, which sums values arriving from
// several columns (separate debit and credit columns, for instance).
type PreSplit struct {
	dateFormat     DateFormat
	currencyFormat CurrencyFormat
	accounts       AccountResolver
	prices         PriceSource

	action    *string
	account   *model.Account
	amount    *decimal.Decimal
	amountNeg *decimal.Decimal
	price     *decimal.Decimal
	memo      *string
	recState  *model.ReconcileState
	recDate   *time.Time

	taction    *string
	taccount   *model.Account
	tamount    *decimal.Decimal
	tamountNeg *decimal.Decimal
	tmemo      *string
	trecState  *model.ReconcileState
	trecDate   *time.Time

	created bool
	errs    map[PropertyType]string
}

// NewPreSplit creates an empty split accumulator.
func NewPreSplit(dateFormat DateFormat, currencyFormat CurrencyFormat, accounts AccountResolver, priceDB PriceSource) *PreSplit {
	return &PreSplit{
		dateFormat:     dateFormat,
		currencyFormat: currencyFormat,
		accounts:       accounts,
		prices:         priceDB,
		errs:           make(map[PropertyType]string),
	}
}

// SetDateFormat changes the date format used by subsequent Set calls.
func (p *PreSplit) SetDateFormat(f DateFormat) {
	p.dateFormat = f
}

// SetCurrencyFormat changes the currency format used by subsequent Set and
// Add calls.
func (p *PreSplit) SetCurrencyFormat(f CurrencyFormat) {
	p.currencyFormat = f
}

// Account returns the resolved account, or nil.
func (p *PreSplit) Account() *model.Account {
	return p.account
}

// SetAccount overrides the resolved account directly, bypassing the
// resolver. Used when the caller already knows the target account.
func (p *PreSplit) SetAccount(acct *model.Account) {
	p.account = acct
}

// Set assigns a raw string value to a split property, with the same error
// bookkeeping as PreTrans.Set. Account properties must be non-empty and
// resolve via the account resolver. Transaction-scope properties are
// ignored with a warning.
func (p *PreSplit) Set(prop PropertyType, value string) error {
	delete(p.errs, prop)

	var err error
	switch prop {
	case PropAction:
		p.action = optString(value)

	case PropTransferAction:
		p.taction = optString(value)

	case PropAccount:
		p.account, err = p.resolveAccount(value, "account")

	case PropTransferAccount:
		p.taccount, err = p.resolveAccount(value, "transfer account")

	case PropMemo:
		p.memo = optString(value)

	case PropTransferMemo:
		p.tmemo = optString(value)

	case PropAmount:
		p.amount, err = p.parseAmount(value)

	case PropAmountNeg:
		p.amountNeg, err = p.parseAmount(value)

	case PropTransferAmount:
		p.tamount, err = p.parseAmount(value)

	case PropTransferAmountNeg:
		p.tamountNeg, err = p.parseAmount(value)

	case PropPrice:
		// A price is not strictly a currency, but it will likely use the
		// same decimal mark as currencies in the file, so parse it with
		// the same convention.
		p.price, err = p.parseAmount(value)

	case PropRecState:
		p.recState = nil
		var state model.ReconcileState
		if state, err = ParseReconciled(value); err == nil {
			p.recState = &state
		}

	case PropTransferRecState:
		p.trecState = nil
		var state model.ReconcileState
		if state, err = ParseReconciled(value); err == nil {
			p.trecState = &state
		}

	case PropRecDate:
		p.recDate = nil
		if value != "" {
			var d time.Time
			if d, err = ParseDate(value, p.dateFormat); err == nil {
				p.recDate = &d
			}
		}

	case PropTransferRecDate:
		p.trecDate = nil
		if value != "" {
			var d time.Time
			if d, err = ParseDate(value, p.dateFormat); err == nil {
				p.trecDate = &d
			}
		}

	default:
		diag.Warnf("%s is an invalid property for a split", prop.Label())
	}

	if err != nil {
		perr := &ParseError{Prop: prop, Cause: err}
		p.errs[prop] = perr.Error()
		return perr
	}
	return nil
}

func (p *PreSplit) resolveAccount(value, what string) (*model.Account, error) {
	if value == "" {
		return nil, fmt.Errorf("%s value can't be empty", what)
	}
	acct := p.accounts.Resolve(value)
	if acct == nil {
		return nil, fmt.Errorf("%s value can't be mapped back to an account", what)
	}
	return acct, nil
}

func (p *PreSplit) parseAmount(value string) (*decimal.Decimal, error) {
	d, err := ParseMonetary(value, p.currencyFormat)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Reset clears a property, swallowing any transient clear-time error.
func (p *PreSplit) Reset(prop PropertyType) {
	_ = p.Set(prop, "")
	delete(p.errs, prop)
}

// Add parses a value for an amount-like property and sums it into the
// existing value; the first occurrence behaves like Set. Any other
// property is ignored with a warning.
func (p *PreSplit) Add(prop PropertyType, value string) error {
	delete(p.errs, prop)

	var err error
	switch prop {
	case PropAmount:
		p.amount, err = p.addAmount(p.amount, value)
	case PropAmountNeg:
		p.amountNeg, err = p.addAmount(p.amountNeg, value)
	case PropTransferAmount:
		p.tamount, err = p.addAmount(p.tamount, value)
	case PropTransferAmountNeg:
		p.tamountNeg, err = p.addAmount(p.tamountNeg, value)
	default:
		diag.Warnf("%s can't be used to add values in a split", prop.Label())
	}

	if err != nil {
		perr := &ParseError{Prop: prop, Cause: err}
		p.errs[prop] = perr.Error()
		return perr
	}
	return nil
}

func (p *PreSplit) addAmount(current *decimal.Decimal, value string) (*decimal.Decimal, error) {
	d, err := ParseMonetary(value, p.currencyFormat)
	if err != nil {
		return current, err
	}
	if current != nil {
		d = d.Add(*current)
	}
	return &d, nil
}

// VerifyEssentials returns a message per missing mandatory property: at
// least one of amount and negated amount must be present, and a reconciled
// state requires a reconcile date (same for the transfer side).
func (p *PreSplit) VerifyEssentials() []string {
	var msgs []string
	if p.amount == nil && p.amountNeg == nil {
		msgs = append(msgs, "no amount or negated amount column")
	}
	if p.recState != nil && *p.recState == model.Reconciled && p.recDate == nil {
		msgs = append(msgs, "split is reconciled but reconcile date column is missing or invalid")
	}
	if p.trecState != nil && *p.trecState == model.Reconciled && p.trecDate == nil {
		msgs = append(msgs, "transfer split is reconciled but transfer reconcile date column is missing or invalid")
	}
	return msgs
}

// addSplit attaches one split with the given amount and value to the
// transaction.
func addSplit(tx *model.Transaction, account *model.Account, amount, value decimal.Decimal,
	action, memo *string, recState *model.ReconcileState, recDate *time.Time) {
	s := &model.Split{
		Account:   account,
		Amount:    amount,
		Value:     value,
		Reconcile: model.NotReconciled,
	}
	if memo != nil {
		s.Memo = *memo
	}
	if action != nil {
		s.Action = *action
	}
	if recState != nil && *recState != model.NotReconciled {
		s.Reconcile = *recState
	}
	if recState != nil && *recState == model.Reconciled && recDate != nil {
		s.ReconcileDate = neutralTime(*recDate)
	}
	tx.AddSplit(s)
}

// CreateSplit materializes the accumulated properties as one split on the
// draft transaction, or two when a transfer account was supplied and its
// side could be completed. Never returns an error: failures are reported
// through the diagnostic channel and the draft is left for the caller to
// inspect. Idempotent.
//
// The split's value is resolved against the transaction currency in this
// order: the raw amount when the account commodity matches; the negated
// net transfer amount when the transfer account's commodity matches; the
// amount times an explicit price; the amount converted at the nearest
// recorded price. When none applies, no split is created.
func (p *PreSplit) CreateSplit(draft *DraftTransaction) {
	if p.created {
		return
	}

	// The caller should have verified essentials already.
	if msgs := p.VerifyEssentials(); len(msgs) > 0 {
		diag.Warnf("not creating split because essentials not set properly: %s",
			strings.Join(msgs, "; "))
		return
	}

	amount := decimal.Zero
	if p.amount != nil {
		amount = amount.Add(*p.amount)
	}
	if p.amountNeg != nil {
		amount = amount.Sub(*p.amountNeg)
	}

	var tamount *decimal.Decimal
	if p.tamount != nil || p.tamountNeg != nil {
		v := decimal.Zero
		if p.tamount != nil {
			v = v.Add(*p.tamount)
		}
		if p.tamountNeg != nil {
			v = v.Sub(*p.tamountNeg)
		}
		tamount = &v
	}

	transCurr := draft.Tx.Currency
	var acctComm *model.Commodity
	if p.account != nil {
		acctComm = p.account.Commodity
	}

	var value decimal.Decimal
	switch {
	case transCurr.Equiv(acctComm):
		value = amount
	case tamount != nil && p.taccount != nil && transCurr.Equiv(p.taccount.Commodity):
		value = tamount.Neg()
	case p.price != nil:
		value = amount.Mul(*p.price)
	default:
		// No explicit conversion data; look up the nearest recorded price.
		np := p.prices.NearestInTime(acctComm, transCurr, draft.Tx.PostedDate)
		if np == nil || np.Value.IsZero() {
			diag.Errorf("no usable price between %s and %s, can't create this split",
				commodityName(acctComm), commodityName(transCurr))
			p.created = true
			return
		}
		// Check the conversion direction before applying the rate.
		// Reminder: value = amount * price, or amount = value / price.
		if np.Currency.Equiv(transCurr) {
			value = amount.Mul(np.Value)
		} else {
			value = amount.Div(np.Value)
		}
	}

	addSplit(draft.Tx, p.account, amount, value, p.action, p.memo, p.recState, p.recDate)
	splitsCreated := 1

	if p.taccount != nil {
		// A transfer account means we're processing a single-line two-split
		// transaction. Determine the transfer amount: use the file's
		// transfer amount columns when given, otherwise derive it from the
		// negated value, mirroring the resolution chain from the transfer
		// account's perspective.
		tvalue := value.Neg()
		if tamount == nil {
			tacctComm := p.taccount.Commodity
			switch {
			case transCurr.Equiv(tacctComm):
				tamount = &tvalue
			case p.price != nil && !p.price.IsZero():
				v := tvalue.Div(*p.price)
				tamount = &v
			default:
				np := p.prices.NearestInTime(tacctComm, transCurr, draft.Tx.PostedDate)
				if np != nil && !np.Value.IsZero() {
					var v decimal.Decimal
					if np.Currency.Equiv(transCurr) {
						v = tvalue.Div(np.Value)
					} else {
						v = tvalue.Mul(np.Value)
					}
					tamount = &v
				} else {
					diag.Warnf("no usable price, deferring creation of the transfer split to the import matcher")
				}
			}
		}
		if tamount != nil {
			addSplit(draft.Tx, p.taccount, *tamount, tvalue, p.taction, p.tmemo, p.trecState, p.trecDate)
			splitsCreated++
		}
	}

	if splitsCreated == 1 {
		// Either multi-line mode, or single-line mode without enough detail
		// to create the transfer split. Pass what we know to the draft so
		// the downstream matcher can complete the balancing split.
		draft.Price = p.price
		draft.TransferAction = p.taction
		draft.TransferMemo = p.tmemo
		draft.TransferAmount = tamount
		draft.TransferAccount = p.taccount
		draft.TransferRec = p.trecState
		draft.TransferRecDate = p.trecDate
	}

	p.created = true
}

// Errors returns a copy of the per-property error map.
func (p *PreSplit) Errors() map[PropertyType]string {
	out := make(map[PropertyType]string, len(p.errs))
	for k, v := range p.errs {
		out[k] = v
	}
	return out
}

func commodityName(c *model.Commodity) string {
	if c == nil {
		return "(none)"
	}
	return c.UniqueName()
}
