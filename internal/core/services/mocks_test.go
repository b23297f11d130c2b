package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByParticipant(ctx context.Context, participantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, participantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, from, to, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetBalance(ctx context.Context, participantID string) (int64, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, status, updatedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) AddHolder(ctx context.Context, holder domain.AccountHolder) error {
	args := m.Called(ctx, holder)
	return args.Error(0)
}

func (m *MockAccountRepository) RemoveHolder(ctx context.Context, accountID, holderID string) error {
	args := m.Called(ctx, accountID, holderID)
	return args.Error(0)
}

// --- Mock BalanceSvc ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetBalance(ctx context.Context, participantID string) (int64, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock PrincipalRepository ---
type MockPrincipalRepository struct {
	mock.Mock
}

var _ portsrepo.PrincipalRepositoryFacade = (*MockPrincipalRepository)(nil)

func (m *MockPrincipalRepository) FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) FindPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error) {
	args := m.Called(ctx, provider, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) ListPrincipals(ctx context.Context, limit int, offset int) ([]domain.Principal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) IdentityExists(ctx context.Context, provider, externalID string) (bool, error) {
	args := m.Called(ctx, provider, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPrincipalRepository) SavePrincipal(ctx context.Context, principal domain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockPrincipalRepository) DeletePrincipal(ctx context.Context, principalID string) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

func (m *MockPrincipalRepository) AddIdentity(ctx context.Context, identity domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockPrincipalRepository) RemoveIdentity(ctx context.Context, principalID, identityID string) error {
	args := m.Called(ctx, principalID, identityID)
	return args.Error(0)
}

func (m *MockPrincipalRepository) AddRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockPrincipalRepository) RemoveRole(ctx context.Context, principalID, roleID string) error {
	args := m.Called(ctx, principalID, roleID)
	return args.Error(0)
}

func (m *MockPrincipalRepository) UpsertAttribute(ctx context.Context, attribute domain.Attribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockPrincipalRepository) RemoveAttribute(ctx context.Context, principalID, attributeID string) error {
	args := m.Called(ctx, principalID, attributeID)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserName(ctx context.Context, userID string, name domain.Name, updatedAt time.Time) error {
	args := m.Called(ctx, userID, name, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) AddEmail(ctx context.Context, email domain.UserEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveEmail(ctx context.Context, userID, emailID string) error {
	args := m.Called(ctx, userID, emailID)
	return args.Error(0)
}

func (m *MockUserRepository) AddAddress(ctx context.Context, address domain.UserAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveAddress(ctx context.Context, userID, addressID string) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}
