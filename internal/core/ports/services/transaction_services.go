package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger transactions
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction and its journal entries.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByParticipant retrieves transactions touching a participant with token-based pagination.
	ListTransactionsByParticipant(ctx context.Context, participantID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines the operations that record money movements
type TransactionWriterSvc interface {
	CreateDeposit(ctx context.Context, req dto.DepositRequest) (*domain.Transaction, error)
	CreateWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*domain.Transaction, error)
	CreateTransfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error)
	CreateFee(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error)
	CreateInterest(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error)
}

// TransactionLifecycleSvc defines status transitions of a recorded transaction
type TransactionLifecycleSvc interface {
	CompleteTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FailTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ReverseTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// BalanceSvc derives balances from the journal
type BalanceSvc interface {
	// GetBalance returns the participant's balance in minor units.
	GetBalance(ctx context.Context, participantID string) (int64, error)
}

// TransactionSvcFacade combines all ledger service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionLifecycleSvc
	BalanceSvc
}
