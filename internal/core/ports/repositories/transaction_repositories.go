package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction together with its journal entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByParticipant retrieves transactions that touch a participant, newest first,
	// using token-based pagination. It returns the transactions, a token for the next page, and an error.
	ListTransactionsByParticipant(ctx context.Context, participantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// SaveTransaction persists a transaction and all of its journal entries atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction from one status to another. It fails with
	// apperrors.ErrInvalidOperation when the stored status is no longer `from`.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedAt time.Time) error
}

// BalanceReader derives balances from journal entries
type BalanceReader interface {
	// GetBalance sums +amount for every debit and -amount for every credit recorded against
	// the participant. A participant without entries has a zero balance.
	GetBalance(ctx context.Context, participantID string) (int64, error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	BalanceReader
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
