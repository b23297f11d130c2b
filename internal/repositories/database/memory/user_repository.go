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

// UserRepository stores users with their emails and addresses.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository over store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrConflict, user.UserID)
	}
	s.users[user.UserID] = cloneUser(&user)
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	all := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, *cloneUser(u))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].UserID < all[j].UserID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *UserRepository) UpdateUserName(_ context.Context, userID string, name domain.Name, updatedAt time.Time) error {
	return r.mutate(userID, func(u *domain.User) error {
		u.Name = name
		u.LastUpdatedAt = updatedAt
		return nil
	})
}

func (r *UserRepository) DeleteUser(_ context.Context, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	delete(s.users, userID)
	return nil
}

func (r *UserRepository) AddEmail(_ context.Context, email domain.UserEmail) error {
	return r.mutate(email.UserID, func(u *domain.User) error {
		for _, e := range u.Emails {
			if e.Email.Address == email.Email.Address {
				return fmt.Errorf("%w: email %s is already registered", apperrors.ErrConflict, email.Email.Address)
			}
		}
		u.Emails = append(u.Emails, email)
		return nil
	})
}

func (r *UserRepository) RemoveEmail(_ context.Context, userID, emailID string) error {
	return r.mutate(userID, func(u *domain.User) error {
		return u.RemoveEmail(emailID)
	})
}

func (r *UserRepository) AddAddress(_ context.Context, address domain.UserAddress) error {
	return r.mutate(address.UserID, func(u *domain.User) error {
		u.Addresses = append(u.Addresses, address)
		return nil
	})
}

func (r *UserRepository) RemoveAddress(_ context.Context, userID, addressID string) error {
	return r.mutate(userID, func(u *domain.User) error {
		return u.RemoveAddress(addressID)
	})
}

func (r *UserRepository) mutate(userID string, fn func(*domain.User) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return fn(u)
}
