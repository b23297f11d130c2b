package memory

import (
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider creates every repository over a fresh shared store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewRepositoryProviderWithStore(NewStore())
}

// NewRepositoryProviderWithStore creates every repository over store.
func NewRepositoryProviderWithStore(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        NewUserRepository(store),
		AccountRepo:     NewAccountRepository(store),
		PrincipalRepo:   NewPrincipalRepository(store),
		TransactionRepo: NewTransactionRepository(store),
	}
}
