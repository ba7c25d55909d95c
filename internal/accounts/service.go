package accounts

import (
	"fmt"
	"os"

	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts   []*model.Account
	byFullName map[string]*model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []*model.Account) *Service {
	byFullName := make(map[string]*model.Account, len(accounts))
	for _, a := range accounts {
		byFullName[a.FullName] = a
	}
	return &Service{accounts: accounts, byFullName: byFullName}
}

// Load reads a chart-of-accounts CSV file and returns a Service. Commodity
// mnemonics in the file are resolved against the given table.
func Load(path string, table *commodities.Table) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f, table)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []*model.Account {
	return s.accounts
}

// LookupByFullName returns the account with the given colon-separated full
// name, or nil.
func (s *Service) LookupByFullName(fullName string) *model.Account {
	return s.byFullName[fullName]
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []*model.Account {
	var result []*model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
