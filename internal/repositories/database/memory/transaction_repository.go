package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice/internal/utils/pagination"
)

// TransactionRepository is the in-memory ledger.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a ledger repository over store.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrConflict, txn.TransactionID)
	}
	if _, exists := s.references[txn.ReferenceNumber]; exists {
		return fmt.Errorf("%w: reference number %s already exists", apperrors.ErrConflict, txn.ReferenceNumber)
	}

	s.transactions[txn.TransactionID] = cloneTransaction(&txn)
	s.references[txn.ReferenceNumber] = struct{}{}
	for _, e := range txn.Entries {
		s.entriesByParticipant[e.ParticipantID] = append(s.entriesByParticipant[e.ParticipantID], e)
	}
	return nil
}

func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return cloneTransaction(txn), nil
}

func (r *TransactionRepository) ListTransactionsByParticipant(_ context.Context, participantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}

	s := r.store
	s.mu.RLock()
	seen := make(map[string]struct{})
	var matches []domain.Transaction
	for _, e := range s.entriesByParticipant[participantID] {
		if _, dup := seen[e.TransactionID]; dup {
			continue
		}
		seen[e.TransactionID] = struct{}{}
		txn := s.transactions[e.TransactionID]
		if cursor != nil && !cursor.Before(txn.CreatedAt, txn.TransactionID) {
			continue
		}
		matches = append(matches, *cloneTransaction(txn))
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].TransactionID > matches[j].TransactionID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if len(matches) <= limit {
		return matches, nil, nil
	}
	page := matches[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
	return page, &token, nil
}

func (r *TransactionRepository) UpdateTransactionStatus(_ context.Context, transactionID string, from, to domain.TransactionStatus, updatedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if txn.Status != from {
		return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrInvalidOperation, transactionID, txn.Status, from)
	}
	txn.Status = to
	txn.LastUpdatedAt = updatedAt
	return nil
}

func (r *TransactionRepository) GetBalance(_ context.Context, participantID string) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var balance int64
	for _, e := range s.entriesByParticipant[participantID] {
		var err error
		if balance, err = e.ApplyToBalance(balance, s.transactions[e.TransactionID].Amount); err != nil {
			return 0, apperrors.NewAppError(500, fmt.Sprintf("balance of %s cannot be represented", participantID), err)
		}
	}
	return balance, nil
}
