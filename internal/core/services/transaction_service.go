package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// transactionService records ledger transactions and derives balances from them.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	locker  ParticipantLocker
}

// TransactionServiceOption configures the transaction service.
type TransactionServiceOption func(*transactionService)

// WithStrictMode enables per-participant serialization and a sufficient-funds
// check for operations that take money out of an account.
func WithStrictMode(locker ParticipantLocker) TransactionServiceOption {
	return func(s *transactionService) {
		s.locker = locker
	}
}

// NewTransactionService creates a new transaction service. Without options, writes
// are not serialized and balances may go negative.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{txnRepo: txnRepo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateDeposit(ctx context.Context, req dto.DepositRequest) (*domain.Transaction, error) {
	txn, err := domain.NewDeposit(req.DestinationAccountID, req.Amount, req.CurrencyCode, req.Description)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, txn)
}

func (s *transactionService) CreateWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*domain.Transaction, error) {
	txn, err := domain.NewWithdrawal(req.SourceAccountID, req.Amount, req.CurrencyCode, req.Description)
	if err != nil {
		return nil, err
	}
	return s.recordGuarded(ctx, txn, req.SourceAccountID)
}

func (s *transactionService) CreateTransfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error) {
	txn, err := domain.NewTransfer(req.SourceAccountID, req.DestinationAccountID, req.Amount, req.CurrencyCode, req.Description)
	if err != nil {
		return nil, err
	}
	return s.recordGuarded(ctx, txn, req.SourceAccountID, req.DestinationAccountID)
}

func (s *transactionService) CreateFee(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error) {
	txn, err := domain.NewFee(req.AccountID, req.Amount, req.CurrencyCode, req.Description)
	if err != nil {
		return nil, err
	}
	return s.recordGuarded(ctx, txn, req.AccountID)
}

func (s *transactionService) CreateInterest(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error) {
	txn, err := domain.NewInterest(req.AccountID, req.Amount, req.CurrencyCode, req.Description)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, txn)
}

// recordGuarded persists txn. In strict mode it first locks every participant and
// rejects the write when a credited participant cannot cover the amount.
func (s *transactionService) recordGuarded(ctx context.Context, txn *domain.Transaction, participantIDs ...string) (*domain.Transaction, error) {
	if s.locker == nil {
		return s.record(ctx, txn)
	}

	unlock, err := s.locker.Lock(ctx, participantIDs...)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock participants", slog.Any("participant_ids", participantIDs))
		return nil, err
	}
	defer unlock()

	for _, id := range participantIDs {
		effect, err := txn.BalanceEffect(id)
		if err != nil {
			return nil, err
		}
		if effect >= 0 {
			continue
		}
		balance, err := s.txnRepo.GetBalance(ctx, id)
		if err != nil {
			s.LogError(ctx, err, "Failed to read balance for funds check", slog.String("participant_id", id))
			return nil, err
		}
		if balance < txn.Amount {
			err := fmt.Errorf("%w: insufficient funds on %s: balance %d, required %d",
				apperrors.ErrInvalidOperation, id, balance, txn.Amount)
			s.LogWarn(ctx, err, "Rejected transaction", slog.String("type", string(txn.Type)))
			return nil, err
		}
	}
	return s.record(ctx, txn)
}

func (s *transactionService) record(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if err := s.txnRepo.SaveTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("type", string(txn.Type)))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_number", txn.ReferenceNumber),
		slog.String("type", string(txn.Type)),
		slog.Int64("amount", txn.Amount),
		slog.String("currency", txn.Currency.Code()))
	return txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactionsByParticipant(ctx context.Context, participantID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	txns, next, err := s.txnRepo.ListTransactionsByParticipant(ctx, participantID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("participant_id", participantID))
		return nil, nil, err
	}
	return txns, next, nil
}

func (s *transactionService) GetBalance(ctx context.Context, participantID string) (int64, error) {
	balance, err := s.txnRepo.GetBalance(ctx, participantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance", slog.String("participant_id", participantID))
		return 0, err
	}
	return balance, nil
}

func (s *transactionService) CompleteTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transition(ctx, transactionID, (*domain.Transaction).Complete)
}

func (s *transactionService) FailTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transition(ctx, transactionID, (*domain.Transaction).Fail)
}

func (s *transactionService) ReverseTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transition(ctx, transactionID, (*domain.Transaction).Reverse)
}

// transition applies a state change to the stored transaction. The write is
// conditional on the status that was read, so a concurrent transition loses.
func (s *transactionService) transition(ctx context.Context, transactionID string, apply func(*domain.Transaction) error) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	from := txn.Status
	if err := apply(txn); err != nil {
		s.LogWarn(ctx, err, "Rejected status transition", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, from, txn.Status, txn.LastUpdatedAt); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status",
			slog.String("transaction_id", transactionID),
			slog.String("status", string(txn.Status)))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction status changed",
		slog.String("transaction_id", transactionID),
		slog.String("from", string(from)),
		slog.String("to", string(txn.Status)))
	return txn, nil
}
