package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
)

// AccountRepository stores accounts and their holders.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrConflict, account.AccountID)
	}
	s.accounts[account.AccountID] = cloneAccount(&account)
	return nil
}

func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return cloneAccount(acc), nil
}

func (r *AccountRepository) ListAccountsByHolder(_ context.Context, holderID string) ([]domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if acc.HasHolder(holderID) {
			accounts = append(accounts, *cloneAccount(acc))
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *AccountRepository) UpdateAccountStatus(_ context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.Status = status
	acc.LastUpdatedAt = updatedAt
	return nil
}

func (r *AccountRepository) AddHolder(_ context.Context, holder domain.AccountHolder) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[holder.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, holder.AccountID)
	}
	if acc.HasHolder(holder.HolderID) {
		return fmt.Errorf("%w: holder %s is already linked to account %s", apperrors.ErrConflict, holder.HolderID, holder.AccountID)
	}
	acc.Holders = append(acc.Holders, holder)
	return nil
}

func (r *AccountRepository) RemoveHolder(_ context.Context, accountID, holderID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	for i, h := range acc.Holders {
		if h.HolderID == holderID {
			acc.Holders = append(acc.Holders[:i], acc.Holders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: holder %s is not linked to account %s", apperrors.ErrNotFound, holderID, accountID)
}
