// Package memory implements the repository ports on in-process maps. It keeps
// the same error semantics as the PostgreSQL driver and is used for local runs
// and end-to-end tests.
package memory

import (
	"slices"
	"sync"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// Store holds every aggregate. All repositories created from one Store share it.
type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User
	accounts     map[string]*domain.Account
	principals   map[string]*domain.Principal
	transactions map[string]*domain.Transaction

	// entriesByParticipant indexes journal entries by participant for balance reads.
	entriesByParticipant map[string][]domain.JournalEntry
	references           map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:                make(map[string]*domain.User),
		accounts:             make(map[string]*domain.Account),
		principals:           make(map[string]*domain.Principal),
		transactions:         make(map[string]*domain.Transaction),
		entriesByParticipant: make(map[string][]domain.JournalEntry),
		references:           make(map[string]struct{}),
	}
}

// Values handed out by the store are deep copies; callers never see internal pointers.

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	cp.Entries = slices.Clone(t.Entries)
	return &cp
}

func cloneAccount(a *domain.Account) *domain.Account {
	cp := *a
	cp.Holders = slices.Clone(a.Holders)
	return &cp
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	cp.Emails = slices.Clone(u.Emails)
	cp.Addresses = slices.Clone(u.Addresses)
	return &cp
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	cp := *p
	cp.Identities = slices.Clone(p.Identities)
	cp.Roles = slices.Clone(p.Roles)
	cp.Attributes = slices.Clone(p.Attributes)
	return &cp
}
