package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/core/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) TestCreateDeposit_Success() {
	req := dto.DepositRequest{DestinationAccountID: "acc-1", Amount: 50000, CurrencyCode: "nok", Description: "salary"}

	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.Deposit && len(txn.Entries) == 1 &&
			txn.Entries[0].ParticipantID == "acc-1" && txn.Entries[0].EntryType == domain.Debit
	})).Return(nil).Once()

	txn, err := suite.service.CreateDeposit(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPending, txn.Status)
	suite.Equal(int64(50000), txn.Amount)
	suite.Equal("NOK", txn.Currency.Code())
	suite.Regexp(`^TXN-\d{8}-[0-9A-Z]{8}$`, txn.ReferenceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateDeposit_InvalidAmount() {
	req := dto.DepositRequest{DestinationAccountID: "acc-1", Amount: 0, CurrencyCode: "NOK"}

	txn, err := suite.service.CreateDeposit(suite.ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_Entries() {
	req := dto.TransferRequest{SourceAccountID: "src", DestinationAccountID: "dst", Amount: 1000, CurrencyCode: "EUR"}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransfer(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(txn.Entries, 2)
	suite.Equal("src", txn.Entries[0].ParticipantID)
	suite.Equal(domain.Credit, txn.Entries[0].EntryType)
	suite.Equal("dst", txn.Entries[1].ParticipantID)
	suite.Equal(domain.Debit, txn.Entries[1].EntryType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_SameParticipant() {
	req := dto.TransferRequest{SourceAccountID: "acc", DestinationAccountID: "acc", Amount: 1000, CurrencyCode: "EUR"}

	_, err := suite.service.CreateTransfer(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateWithdrawal_DefaultModeAllowsOverdraft() {
	req := dto.WithdrawalRequest{SourceAccountID: "acc-1", Amount: 100000, CurrencyCode: "NOK"}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateWithdrawal(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.Withdrawal, txn.Type)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateFee_SaveError() {
	req := dto.ChargeRequest{AccountID: "acc-1", Amount: 25, CurrencyCode: "USD"}
	dbErr := errors.New("db down")
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(dbErr).Once()

	txn, err := suite.service.CreateFee(suite.ctx, req)

	suite.Nil(txn)
	suite.ErrorIs(err, dbErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_NotFound() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransaction(suite.ctx, "missing")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByParticipant_PassesToken() {
	token := "abc"
	page := []domain.Transaction{{TransactionID: "t1"}}
	suite.mockRepo.On("ListTransactionsByParticipant", suite.ctx, "acc-1", 5, &token).Return(page, "def", nil).Once()

	txns, next, err := suite.service.ListTransactionsByParticipant(suite.ctx, "acc-1", dto.ListTransactionsParams{Limit: 5, NextToken: &token})

	suite.Require().NoError(err)
	suite.Equal(page, txns)
	suite.Require().NotNil(next)
	suite.Equal("def", *next)
}

func (suite *TransactionServiceTestSuite) TestGetBalance() {
	suite.mockRepo.On("GetBalance", suite.ctx, "acc-1").Return(int64(300), nil).Once()

	balance, err := suite.service.GetBalance(suite.ctx, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(int64(300), balance)
}

func (suite *TransactionServiceTestSuite) pendingTxn() *domain.Transaction {
	txn, err := domain.NewDeposit("acc-1", 100, "NOK", "")
	suite.Require().NoError(err)
	return txn
}

func (suite *TransactionServiceTestSuite) TestCompleteTransaction_Success() {
	txn := suite.pendingTxn()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("UpdateTransactionStatus", suite.ctx, txn.TransactionID,
		domain.TransactionPending, domain.TransactionCompleted, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.CompleteTransaction(suite.ctx, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestReverseTransaction_RequiresCompleted() {
	txn := suite.pendingTxn()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.ReverseTransaction(suite.ctx, txn.TransactionID)

	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestFailTransaction_LostRace() {
	txn := suite.pendingTxn()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("UpdateTransactionStatus", suite.ctx, txn.TransactionID,
		domain.TransactionPending, domain.TransactionFailed, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidOperation).Once()

	_, err := suite.service.FailTransaction(suite.ctx, txn.TransactionID)

	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

// --- strict mode ---

type StrictTransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
}

func (suite *StrictTransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo,
		services.WithStrictMode(services.NewLocalParticipantLocker()))
	suite.ctx = context.Background()
}

func TestStrictTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StrictTransactionServiceTestSuite))
}

func (suite *StrictTransactionServiceTestSuite) TestWithdrawal_InsufficientFunds() {
	suite.mockRepo.On("GetBalance", suite.ctx, "acc-1").Return(int64(199), nil).Once()

	_, err := suite.service.CreateWithdrawal(suite.ctx, dto.WithdrawalRequest{SourceAccountID: "acc-1", Amount: 200, CurrencyCode: "NOK"})

	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.Contains(err.Error(), "insufficient funds")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *StrictTransactionServiceTestSuite) TestWithdrawal_ExactBalance() {
	suite.mockRepo.On("GetBalance", suite.ctx, "acc-1").Return(int64(200), nil).Once()
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	_, err := suite.service.CreateWithdrawal(suite.ctx, dto.WithdrawalRequest{SourceAccountID: "acc-1", Amount: 200, CurrencyCode: "NOK"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StrictTransactionServiceTestSuite) TestTransfer_ChecksOnlySource() {
	suite.mockRepo.On("GetBalance", suite.ctx, "src").Return(int64(1000), nil).Once()
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	_, err := suite.service.CreateTransfer(suite.ctx, dto.TransferRequest{
		SourceAccountID: "src", DestinationAccountID: "dst", Amount: 1000, CurrencyCode: "NOK",
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetBalance", suite.ctx, "dst")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StrictTransactionServiceTestSuite) TestDeposit_NotGuarded() {
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	_, err := suite.service.CreateDeposit(suite.ctx, dto.DepositRequest{DestinationAccountID: "acc-1", Amount: 1, CurrencyCode: "NOK"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything)
}

func TestLocalParticipantLocker_Serializes(t *testing.T) {
	locker := services.NewLocalParticipantLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "b", "a")
	if err != nil {
		t.Fatal(err)
	}

	acquired := make(chan struct{})
	go func() {
		u, err := locker.Lock(ctx, "a")
		if err == nil {
			u()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	unlock() // idempotent

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was never acquired")
	}
}
