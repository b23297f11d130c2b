package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// AccountReader defines read operations for accounts
type AccountReader interface {
	// FindAccountByID retrieves an account with its holders.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByHolder retrieves every account a holder is linked to.
	ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts
type AccountWriter interface {
	// SaveAccount persists a new account and its holders.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus stores a lifecycle change.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error

	// AddHolder links a holder to an account.
	AddHolder(ctx context.Context, holder domain.AccountHolder) error

	// RemoveHolder unlinks a holder from an account.
	RemoveHolder(ctx context.Context, accountID, holderID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
