package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user, including emails and addresses.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user with its emails and addresses.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserName stores a renamed user.
	UpdateUserName(ctx context.Context, userID string, name domain.Name, updatedAt time.Time) error

	// DeleteUser removes a user and everything it owns.
	DeleteUser(ctx context.Context, userID string) error
}

// UserContactWriter defines write operations for a user's emails and addresses
type UserContactWriter interface {
	AddEmail(ctx context.Context, email domain.UserEmail) error
	RemoveEmail(ctx context.Context, userID, emailID string) error
	AddAddress(ctx context.Context, address domain.UserAddress) error
	RemoveAddress(ctx context.Context, userID, addressID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserContactWriter
}
