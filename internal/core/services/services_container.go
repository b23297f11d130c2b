package services

import (
	"github.com/SscSPs/banking_backoffice/internal/core/access"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// locker is only used when strict ledger mode is enabled; a nil locker falls back to an
// in-process one.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, registry *access.Registry, locker ParticipantLocker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var txnOpts []TransactionServiceOption
	if cfg.LedgerStrictMode {
		if locker == nil {
			locker = NewLocalParticipantLocker()
		}
		txnOpts = append(txnOpts, WithStrictMode(locker))
	}

	// The ledger comes first: accounts read their balance through it.
	container.Transaction = NewTransactionService(repos.TransactionRepo, txnOpts...)
	container.Account = NewAccountService(repos.AccountRepo, container.Transaction)
	container.User = NewUserService(repos.UserRepo)
	container.Principal = NewPrincipalService(repos.PrincipalRepo, registry)

	return container
}
