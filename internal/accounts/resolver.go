package accounts

import "github.com/ledgerport-dev/ledgerport/internal/model"

// Resolver maps raw account strings from an import file to accounts. A
// per-session mapping cache (column value as it appeared in the file,
// confirmed by the user in an earlier run) takes precedence over the
// chart's full-name index.
type Resolver struct {
	service *Service
	mapping map[string]*model.Account
}

// NewResolver creates a Resolver over a chart service with an empty
// session mapping.
func NewResolver(service *Service) *Resolver {
	return &Resolver{
		service: service,
		mapping: make(map[string]*model.Account),
	}
}

// Map records a session mapping from a raw import string to an account.
func (r *Resolver) Map(raw string, acct *model.Account) {
	r.mapping[raw] = acct
}

// Resolve returns the account for a raw import string: the session mapping
// first, then the chart by full name. Returns nil when neither matches.
func (r *Resolver) Resolve(raw string) *model.Account {
	if acct, ok := r.mapping[raw]; ok {
		return acct
	}
	return r.service.LookupByFullName(raw)
}
