package props

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerport-dev/ledgerport/internal/diag"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// PreTrans accumulates transaction-header properties across the rows of
// one logical transaction. Each mutator clears then re-records its own
// entry in the per-property error map, so callers can enumerate all
// outstanding problems without catching errors at every call site.
type PreTrans struct {
	dateFormat  DateFormat
	multiSplit  bool
	commodities CommodityLookup

	differ     *string
	date       *time.Time
	num        *string
	desc       *string
	notes      *string
	commodity  *model.Commodity
	voidReason *string

	created bool
	errs    map[PropertyType]string
}

// NewPreTrans creates an empty transaction accumulator.
func NewPreTrans(dateFormat DateFormat, multiSplit bool, table CommodityLookup) *PreTrans {
	return &PreTrans{
		dateFormat:  dateFormat,
		multiSplit:  multiSplit,
		commodities: table,
		errs:        make(map[PropertyType]string),
	}
}

// SetDateFormat changes the date format used by subsequent Set calls.
func (p *PreTrans) SetDateFormat(f DateFormat) {
	p.dateFormat = f
}

// SetMultiSplit changes the multi-split mode for subsequent Set calls.
func (p *PreTrans) SetMultiSplit(multiSplit bool) {
	p.multiSplit = multiSplit
}

// Set assigns a raw string value to a transaction property. An empty
// string clears the property, except that date and description may not be
// cleared outside multi-split mode. Failures are recorded in the error map
// and returned as a *ParseError. Split-scope properties are ignored with a
// warning: that is a caller bug, not bad input.
func (p *PreTrans) Set(prop PropertyType, value string) error {
	delete(p.errs, prop)

	var err error
	switch prop {
	case PropUniqueID:
		p.differ = optString(value)

	case PropDate:
		p.date = nil
		if value != "" {
			var d time.Time
			if d, err = ParseDate(value, p.dateFormat); err == nil {
				p.date = &d
			}
		} else if !p.multiSplit {
			err = fmt.Errorf("date field can not be empty if multi-split option is unset")
		}

	case PropNum:
		p.num = optString(value)

	case PropDescription:
		p.desc = nil
		if value != "" {
			p.desc = &value
		} else if !p.multiSplit {
			err = fmt.Errorf("description field can not be empty if multi-split option is unset")
		}

	case PropNotes:
		p.notes = optString(value)

	case PropCommodity:
		p.commodity = nil
		var comm *model.Commodity
		if comm, err = ParseCommodity(value, p.commodities); err == nil {
			p.commodity = comm
		}

	case PropVoidReason:
		p.voidReason = optString(value)

	default:
		diag.Warnf("%s is an invalid property for a transaction", prop.Label())
	}

	if err != nil {
		perr := &ParseError{Prop: prop, Cause: err}
		p.errs[prop] = perr.Error()
		return perr
	}
	return nil
}

// Reset clears a property. Clearing a mandatory property is not an error
// at reset time; the omission surfaces later through VerifyEssentials.
func (p *PreTrans) Reset(prop PropertyType) {
	_ = p.Set(prop, "")
	// Set with an empty string clears the property but can also record a
	// mandatory-field error. Drop that error here.
	delete(p.errs, prop)
}

// VerifyEssentials returns a message per missing mandatory property. An
// empty result means the accumulator is ready to materialize.
func (p *PreTrans) VerifyEssentials() []string {
	var msgs []string
	if p.date == nil {
		msgs = append(msgs, "no valid date")
	}
	if p.desc == nil {
		msgs = append(msgs, "no valid description")
	}
	return msgs
}

// CreateTransaction materializes the accumulated header as a draft
// transaction in an open edit on the ledger. The transaction currency is
// the assigned commodity when it is an actual currency, the fallback
// otherwise. Returns nil without side effects when already materialized,
// and declines (with a diagnostic, never an error) when essentials are
// missing.
func (p *PreTrans) CreateTransaction(ledger Ledger, fallback *model.Commodity) *DraftTransaction {
	if p.created {
		return nil
	}

	// The caller should have verified essentials already.
	if msgs := p.VerifyEssentials(); len(msgs) > 0 {
		diag.Warnf("not creating transaction because essentials not set properly: %s",
			strings.Join(msgs, "; "))
		return nil
	}

	tx := ledger.NewTransaction()

	if p.commodity != nil && p.commodity.IsCurrency() {
		tx.Currency = p.commodity
	} else {
		tx.Currency = fallback
	}
	tx.PostedDate = neutralTime(*p.date)

	if p.num != nil {
		tx.Num = *p.num
	}
	if p.desc != nil {
		tx.Description = *p.desc
	}
	if p.notes != nil {
		tx.Notes = *p.notes
	}

	p.created = true

	draft := newDraft(ledger, tx)
	draft.VoidReason = p.voidReason
	return draft
}

// IsPartOf reports whether this accumulator's properties are consistent
// with having come from the same logical transaction as parent. The test
// is asymmetric: every property here must be absent or equal to the
// parent's. A fully empty accumulator passes against any parent. A parent
// carrying errors never anchors a group.
func (p *PreTrans) IsPartOf(parent *PreTrans) bool {
	if parent == nil {
		return false
	}

	return optEqString(p.differ, parent.differ) &&
		optEqDate(p.date, parent.date) &&
		optEqString(p.num, parent.num) &&
		optEqString(p.desc, parent.desc) &&
		optEqString(p.notes, parent.notes) &&
		(p.commodity == nil || p.commodity.Equiv(parent.commodity)) &&
		optEqString(p.voidReason, parent.voidReason) &&
		len(parent.errs) == 0
}

// Errors returns a copy of the per-property error map.
func (p *PreTrans) Errors() map[PropertyType]string {
	out := make(map[PropertyType]string, len(p.errs))
	for k, v := range p.errs {
		out[k] = v
	}
	return out
}

func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optEqString(a, b *string) bool {
	if a == nil {
		return true
	}
	return b != nil && *a == *b
}

func optEqDate(a, b *time.Time) bool {
	if a == nil {
		return true
	}
	return b != nil && a.Equal(*b)
}
