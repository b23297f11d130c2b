package handlers_test

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

func txnOrNil(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func accountOrNil(args mock.Arguments) (*domain.AccountWithBalance, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountWithBalance), args.Error(1)
}

func userOrNil(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func principalOrNil(args mock.Arguments) (*domain.Principal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, transactionID))
}
func (m *MockTransactionService) ListTransactionsByParticipant(ctx context.Context, participantID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, participantID, params)
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
func (m *MockTransactionService) CreateDeposit(ctx context.Context, req dto.DepositRequest) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, req))
}
func (m *MockTransactionService) CreateWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, req))
}
func (m *MockTransactionService) CreateTransfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, req))
}
func (m *MockTransactionService) CreateFee(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, req))
}
func (m *MockTransactionService) CreateInterest(ctx context.Context, req dto.ChargeRequest) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, req))
}
func (m *MockTransactionService) CompleteTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, transactionID))
}
func (m *MockTransactionService) FailTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, transactionID))
}
func (m *MockTransactionService) ReverseTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return txnOrNil(m.Called(ctx, transactionID))
}
func (m *MockTransactionService) GetBalance(ctx context.Context, participantID string) (int64, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	return accountOrNil(m.Called(ctx, accountID))
}
func (m *MockAccountService) ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.AccountWithBalance, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithBalance), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.AccountWithBalance, error) {
	return accountOrNil(m.Called(ctx, req))
}
func (m *MockAccountService) AddHolder(ctx context.Context, accountID string, req dto.AddAccountHolderRequest) (*domain.AccountWithBalance, error) {
	return accountOrNil(m.Called(ctx, accountID, req))
}
func (m *MockAccountService) RemoveHolder(ctx context.Context, accountID, holderID string) error {
	return m.Called(ctx, accountID, holderID).Error(0)
}
func (m *MockAccountService) FreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	return accountOrNil(m.Called(ctx, accountID))
}
func (m *MockAccountService) UnfreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	return accountOrNil(m.Called(ctx, accountID))
}
func (m *MockAccountService) CloseAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID))
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, req))
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, req))
}
func (m *MockUserService) AddEmail(ctx context.Context, userID string, req dto.AddEmailRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, req))
}
func (m *MockUserService) RemoveEmail(ctx context.Context, userID, emailID string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, emailID))
}
func (m *MockUserService) AddAddress(ctx context.Context, userID string, req dto.AddAddressRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, req))
}
func (m *MockUserService) RemoveAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, addressID))
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock PrincipalService ---
type MockPrincipalService struct {
	mock.Mock
}

var _ portssvc.PrincipalSvcFacade = (*MockPrincipalService)(nil)

func (m *MockPrincipalService) GetPrincipal(ctx context.Context, principalID string) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID))
}
func (m *MockPrincipalService) GetPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, provider, externalID))
}
func (m *MockPrincipalService) ListPrincipals(ctx context.Context, params dto.ListPrincipalsParams) ([]domain.Principal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}
func (m *MockPrincipalService) CreatePrincipal(ctx context.Context, req dto.IdentityRequest) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, req))
}
func (m *MockPrincipalService) DeletePrincipal(ctx context.Context, principalID string) error {
	return m.Called(ctx, principalID).Error(0)
}
func (m *MockPrincipalService) AddIdentity(ctx context.Context, principalID string, req dto.IdentityRequest) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, req))
}
func (m *MockPrincipalService) RemoveIdentity(ctx context.Context, principalID, provider, externalID string) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, provider, externalID))
}
func (m *MockPrincipalService) AddRole(ctx context.Context, principalID string, req dto.RoleRequest) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, req))
}
func (m *MockPrincipalService) RemoveRole(ctx context.Context, principalID, role string) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, role))
}
func (m *MockPrincipalService) SetAttribute(ctx context.Context, principalID string, req dto.SetAttributeRequest) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, req))
}
func (m *MockPrincipalService) RemoveAttribute(ctx context.Context, principalID, attrDomain, key string) (*domain.Principal, error) {
	return principalOrNil(m.Called(ctx, principalID, attrDomain, key))
}
func (m *MockPrincipalService) ResolvePrincipal(ctx context.Context, provider, externalID string) (*domain.ResolvedPrincipal, error) {
	args := m.Called(ctx, provider, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedPrincipal), args.Error(1)
}
