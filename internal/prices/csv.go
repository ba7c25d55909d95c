package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

const (
	numFields    = 4
	colCommodity = 0
	colCurrency  = 1
	colValue     = 2
	colTime      = 3

	timeFormat = "2006-01-02"
)

// Load reads a price CSV file into a DB, resolving commodities against the
// given table.
func Load(path string, table *commodities.Table) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening price file: %w", err)
	}
	defer f.Close()

	db, err := ReadPrices(f, table)
	if err != nil {
		return nil, fmt.Errorf("reading price file: %w", err)
	}
	return db, nil
}

// ReadPrices reads price rows from a CSV reader into a new DB.
func ReadPrices(r io.Reader, table *commodities.Table) (*DB, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading prices CSV: %w", err)
	}

	db := NewDB()
	if len(records) == 0 {
		return db, nil
	}

	// Skip header row.
	for i, rec := range records[1:] {
		p, err := UnmarshalPrice(rec, table)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		db.Add(p)
	}
	return db, nil
}

// UnmarshalPrice converts a CSV row to a Price.
func UnmarshalPrice(record []string, table *commodities.Table) (*Price, error) {
	if len(record) != numFields {
		return nil, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	comm := lookup(table, record[colCommodity])
	if comm == nil {
		return nil, fmt.Errorf("unknown commodity %q", record[colCommodity])
	}
	curr := lookup(table, record[colCurrency])
	if curr == nil {
		return nil, fmt.Errorf("unknown currency %q", record[colCurrency])
	}

	value, err := decimal.NewFromString(record[colValue])
	if err != nil {
		return nil, fmt.Errorf("parsing price %q: %w", record[colValue], err)
	}

	at, err := time.Parse(timeFormat, record[colTime])
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", record[colTime], err)
	}

	return &Price{Commodity: comm, Currency: curr, Value: value, Time: at}, nil
}

func lookup(table *commodities.Table, name string) *model.Commodity {
	if c := table.LookupUnique(name); c != nil {
		return c
	}
	return table.Lookup(model.CurrencyNamespace, name)
}
