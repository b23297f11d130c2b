package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account with its derived balance.
	GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithBalance, error)

	// ListAccountsByHolder retrieves all accounts a holder is linked to.
	ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.AccountWithBalance, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account with its first holder.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.AccountWithBalance, error)

	// AddHolder links another holder to the account.
	AddHolder(ctx context.Context, accountID string, req dto.AddAccountHolderRequest) (*domain.AccountWithBalance, error)

	// RemoveHolder unlinks a holder. The last holder cannot be removed.
	RemoveHolder(ctx context.Context, accountID, holderID string) error
}

// AccountLifecycleSvc defines lifecycle transitions of an account
type AccountLifecycleSvc interface {
	FreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error)
	UnfreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error)

	// CloseAccount closes the account. Closed accounts are kept for the ledger's sake.
	CloseAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLifecycleSvc
}
