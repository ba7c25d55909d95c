package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgerport-dev/ledgerport/internal/props"
)

// Profile represents an import-profile.yaml file: everything needed to
// turn the rows of one CSV layout into transactions.
type Profile struct {
	DateFormat     string            `yaml:"date_format"`     // y-m-d, d-m-y, m-d-y, d-m, m-d
	CurrencyFormat string            `yaml:"currency_format"` // locale, period, comma
	MultiSplit     bool              `yaml:"multi_split"`
	Currency       string            `yaml:"currency"` // fallback currency mnemonic
	SkipRows       int               `yaml:"skip_rows"`
	Columns        []string          `yaml:"columns"`               // property label per CSV column
	AccountMap     map[string]string `yaml:"account_map,omitempty"` // raw import string -> account full name
}

// Load reads an import profile from disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// Save writes a Profile to a YAML file.
func Save(path string, p *Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// Default returns a Profile with sensible defaults for a two-split import.
func Default() *Profile {
	return &Profile{
		DateFormat:     "y-m-d",
		CurrencyFormat: "period",
		Currency:       "USD",
		SkipRows:       1,
		Columns:        []string{"Date", "Description", "Account", "Amount"},
	}
}

// ResolveDateFormat maps the profile's date format name to a selector.
func (p *Profile) ResolveDateFormat() (props.DateFormat, error) {
	f, ok := props.DateFormatByName(p.DateFormat)
	if !ok {
		return 0, fmt.Errorf("unknown date format %q", p.DateFormat)
	}
	return f, nil
}

// ResolveCurrencyFormat maps the profile's currency format name to a
// selector.
func (p *Profile) ResolveCurrencyFormat() (props.CurrencyFormat, error) {
	f, ok := props.CurrencyFormatByName(p.CurrencyFormat)
	if !ok {
		return 0, fmt.Errorf("unknown currency format %q", p.CurrencyFormat)
	}
	return f, nil
}

// ResolveColumns maps the profile's column labels to property types,
// sanitized for the profile's split mode.
func (p *Profile) ResolveColumns() ([]props.PropertyType, error) {
	cols := make([]props.PropertyType, len(p.Columns))
	for i, label := range p.Columns {
		prop, ok := props.PropertyTypeByLabel(label)
		if !ok {
			return nil, fmt.Errorf("column %d: unknown property %q", i+1, label)
		}
		cols[i] = props.Sanitize(prop, p.MultiSplit)
	}
	return cols, nil
}
