package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

const (
	numFields    = 4
	colFullName  = 0
	colType      = 1
	colCommodity = 2
	colDesc      = 3
)

// ReadAccounts reads a chart-of-accounts CSV. The commodity column holds
// either a unique name ("CURRENCY::USD") or a currency mnemonic ("USD").
func ReadAccounts(r io.Reader, table *commodities.Table) ([]*model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var accounts []*model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec, table)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes a chart-of-accounts CSV (including header).
func WriteAccounts(w io.Writer, accounts []*model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"full_name", "account_type", "commodity", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct *model.Account) []string {
	row := make([]string, numFields)
	row[colFullName] = acct.FullName
	row[colType] = string(acct.Type)
	if acct.Commodity != nil {
		row[colCommodity] = acct.Commodity.UniqueName()
	}
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string, table *commodities.Table) (*model.Account, error) {
	if len(record) != numFields {
		return nil, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colFullName] == "" {
		return nil, fmt.Errorf("account full name is empty")
	}

	var comm *model.Commodity
	if c := record[colCommodity]; c != "" {
		comm = table.LookupUnique(c)
		if comm == nil {
			comm = table.Lookup(model.CurrencyNamespace, c)
		}
		if comm == nil {
			return nil, fmt.Errorf("unknown commodity %q for account %q", c, record[colFullName])
		}
	}

	return &model.Account{
		FullName:    record[colFullName],
		Type:        model.AccountType(record[colType]),
		Commodity:   comm,
		Description: record[colDesc],
	}, nil
}
