// Package props assembles loosely-typed column values from an import file
// into validated transactions and splits. Callers feed already-assigned
// (property type, string value) pairs into PreTrans and PreSplit
// accumulators row by row, then materialize drafts against a ledger.
package props

import "strings"

// PropertyType identifies the meaning of an import column. The enumeration
// is split into two ranges: transaction-scope properties up to
// PropVoidReason and split-scope properties after it. No two columns
// should carry the same type except PropNone.
type PropertyType int

const (
	PropNone PropertyType = iota
	PropUniqueID
	PropDate
	PropNum
	PropDescription
	PropNotes
	PropCommodity
	PropVoidReason

	PropAction
	PropAccount
	PropAmount
	PropAmountNeg
	PropPrice
	PropMemo
	PropRecState
	PropRecDate
	PropTransferAction
	PropTransferAccount
	PropTransferAmount
	PropTransferAmountNeg
	PropTransferMemo
	PropTransferRecState
	PropTransferRecDate
)

const (
	lastTransProp = PropVoidReason
	lastSplitProp = PropTransferRecDate
)

var propLabels = map[PropertyType]string{
	PropNone:              "None",
	PropUniqueID:          "Transaction ID",
	PropDate:              "Date",
	PropNum:               "Number",
	PropDescription:       "Description",
	PropNotes:             "Notes",
	PropCommodity:         "Transaction Commodity",
	PropVoidReason:        "Void Reason",
	PropAction:            "Action",
	PropAccount:           "Account",
	PropAmount:            "Amount",
	PropAmountNeg:         "Amount (Negated)",
	PropPrice:             "Price",
	PropMemo:              "Memo",
	PropRecState:          "Reconciled",
	PropRecDate:           "Reconcile Date",
	PropTransferAction:    "Transfer Action",
	PropTransferAccount:   "Transfer Account",
	PropTransferAmount:    "Transfer Amount",
	PropTransferAmountNeg: "Transfer Amount (Negated)",
	PropTransferMemo:      "Transfer Memo",
	PropTransferRecState:  "Transfer Reconciled",
	PropTransferRecDate:   "Transfer Reconcile Date",
}

// Label returns the human-readable name used in error messages and column
// mapping files.
func (p PropertyType) Label() string {
	if l, ok := propLabels[p]; ok {
		return l
	}
	return "Unknown"
}

// PropertyTypeByLabel returns the property type with the given label,
// matched case-insensitively.
func PropertyTypeByLabel(label string) (PropertyType, bool) {
	for p, l := range propLabels {
		if strings.EqualFold(l, label) {
			return p, true
		}
	}
	return PropNone, false
}

// IsTransactionProp reports whether the type belongs to the transaction
// header.
func (p PropertyType) IsTransactionProp() bool {
	return p > PropNone && p <= lastTransProp
}

// IsSplitProp reports whether the type belongs to a split line.
func (p PropertyType) IsSplitProp() bool {
	return p > lastTransProp && p <= lastSplitProp
}

// IsMultiCol reports whether values for the type accumulate across several
// columns instead of overwriting. Only amount-like types do.
func (p PropertyType) IsMultiCol() bool {
	switch p {
	case PropAmount, PropAmountNeg, PropTransferAmount, PropTransferAmountNeg:
		return true
	}
	return false
}

// Properties the user can't assign in two-split mode.
var twoSplitBlacklist = []PropertyType{PropUniqueID}

// Properties the user can't assign in multi-split mode. Transfer-side
// properties assume a single implicit counter-split, which multi-split
// transactions don't have.
var multiSplitBlacklist = []PropertyType{
	PropTransferAction,
	PropTransferAccount,
	PropTransferAmount,
	PropTransferAmountNeg,
	PropTransferMemo,
	PropTransferRecState,
	PropTransferRecDate,
}

// Sanitize returns the property unchanged when it is valid in the given
// mode, or PropNone when it is not.
func Sanitize(p PropertyType, multiSplit bool) PropertyType {
	blacklist := twoSplitBlacklist
	if multiSplit {
		blacklist = multiSplitBlacklist
	}
	for _, b := range blacklist {
		if p == b {
			return PropNone
		}
	}
	return p
}

// ParseError reports a value that could not be assigned to a property. The
// message places the property label before the cause, matching what ends
// up in an accumulator's error map.
type ParseError struct {
	Prop  PropertyType
	Cause error
}

func (e *ParseError) Error() string {
	return e.Prop.Label() + ": " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
