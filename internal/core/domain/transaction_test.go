package domain_test

import (
	"math"
	"regexp"
	"testing"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^TXN-\d{8}-[0-9A-Z]{8}$`)

func TestTransactionFactories(t *testing.T) {
	tests := []struct {
		name        string
		build       func() (*domain.Transaction, error)
		wantType    domain.TransactionType
		wantEntries []domain.JournalEntry
	}{
		{
			name:     "deposit debits destination",
			build:    func() (*domain.Transaction, error) { return domain.NewDeposit("acc-1", 500, "nok", "salary") },
			wantType: domain.Deposit,
			wantEntries: []domain.JournalEntry{
				{ParticipantID: "acc-1", EntryType: domain.Debit},
			},
		},
		{
			name:     "withdrawal credits source",
			build:    func() (*domain.Transaction, error) { return domain.NewWithdrawal("acc-1", 200, "NOK", "") },
			wantType: domain.Withdrawal,
			wantEntries: []domain.JournalEntry{
				{ParticipantID: "acc-1", EntryType: domain.Credit},
			},
		},
		{
			name:     "transfer credits source and debits destination",
			build:    func() (*domain.Transaction, error) { return domain.NewTransfer("acc-1", "acc-2", 75, "NOK", "rent") },
			wantType: domain.Transfer,
			wantEntries: []domain.JournalEntry{
				{ParticipantID: "acc-1", EntryType: domain.Credit},
				{ParticipantID: "acc-2", EntryType: domain.Debit},
			},
		},
		{
			name:     "fee credits participant",
			build:    func() (*domain.Transaction, error) { return domain.NewFee("acc-1", 10, "NOK", "monthly fee") },
			wantType: domain.Fee,
			wantEntries: []domain.JournalEntry{
				{ParticipantID: "acc-1", EntryType: domain.Credit},
			},
		},
		{
			name:     "interest debits participant",
			build:    func() (*domain.Transaction, error) { return domain.NewInterest("acc-1", 3, "NOK", "") },
			wantType: domain.Interest,
			wantEntries: []domain.JournalEntry{
				{ParticipantID: "acc-1", EntryType: domain.Debit},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := tt.build()
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, txn.Type)
			assert.Equal(t, domain.TransactionPending, txn.Status)
			assert.Equal(t, domain.Currency("NOK"), txn.Currency)
			assert.Regexp(t, referencePattern, txn.ReferenceNumber)
			require.Len(t, txn.Entries, len(tt.wantEntries))
			for i, want := range tt.wantEntries {
				got := txn.Entries[i]
				assert.Equal(t, want.ParticipantID, got.ParticipantID)
				assert.Equal(t, want.EntryType, got.EntryType)
				assert.Equal(t, txn.TransactionID, got.TransactionID)
				assert.NotEmpty(t, got.EntryID)
			}
		})
	}
}

func TestTransactionFactories_Validation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*domain.Transaction, error)
	}{
		{"transfer to self", func() (*domain.Transaction, error) { return domain.NewTransfer("acc-1", "acc-1", 10, "NOK", "") }},
		{"zero amount", func() (*domain.Transaction, error) { return domain.NewDeposit("acc-1", 0, "NOK", "") }},
		{"negative amount", func() (*domain.Transaction, error) { return domain.NewWithdrawal("acc-1", -5, "NOK", "") }},
		{"bad currency", func() (*domain.Transaction, error) { return domain.NewDeposit("acc-1", 10, "NO", "") }},
		{"missing participant", func() (*domain.Transaction, error) { return domain.NewFee("  ", 10, "NOK", "") }},
		{"missing transfer destination", func() (*domain.Transaction, error) { return domain.NewTransfer("acc-1", "", 10, "NOK", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := tt.build()
			assert.Nil(t, txn)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestTransactionStateMachine(t *testing.T) {
	newPending := func(t *testing.T) *domain.Transaction {
		txn, err := domain.NewDeposit("acc-1", 100, "NOK", "")
		require.NoError(t, err)
		return txn
	}

	t.Run("complete from pending", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Complete())
		assert.Equal(t, domain.TransactionCompleted, txn.Status)
	})

	t.Run("complete twice fails", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Complete())
		assert.ErrorIs(t, txn.Complete(), apperrors.ErrInvalidOperation)
		assert.Equal(t, domain.TransactionCompleted, txn.Status)
	})

	t.Run("fail from pending", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Fail())
		assert.Equal(t, domain.TransactionFailed, txn.Status)
		assert.ErrorIs(t, txn.Complete(), apperrors.ErrInvalidOperation)
	})

	t.Run("fail after complete is rejected", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Complete())
		assert.ErrorIs(t, txn.Fail(), apperrors.ErrInvalidOperation)
	})

	t.Run("reverse only from completed", func(t *testing.T) {
		pending := newPending(t)
		assert.ErrorIs(t, pending.Reverse(), apperrors.ErrInvalidOperation)

		failed := newPending(t)
		require.NoError(t, failed.Fail())
		assert.ErrorIs(t, failed.Reverse(), apperrors.ErrInvalidOperation)

		completed := newPending(t)
		require.NoError(t, completed.Complete())
		require.NoError(t, completed.Reverse())
		assert.Equal(t, domain.TransactionReversed, completed.Status)

		// reversed is terminal
		assert.ErrorIs(t, completed.Reverse(), apperrors.ErrInvalidOperation)
		assert.ErrorIs(t, completed.Complete(), apperrors.ErrInvalidOperation)
	})
}

func TestTransaction_BalanceEffect(t *testing.T) {
	txn, err := domain.NewTransfer("src", "dst", 250, "NOK", "")
	require.NoError(t, err)

	src, err := txn.BalanceEffect("src")
	require.NoError(t, err)
	dst, err := txn.BalanceEffect("dst")
	require.NoError(t, err)
	other, err := txn.BalanceEffect("other")
	require.NoError(t, err)

	assert.Equal(t, int64(-250), src)
	assert.Equal(t, int64(250), dst)
	assert.Zero(t, other)
	assert.Equal(t, []string{"src", "dst"}, txn.ParticipantIDs())
}

func TestJournalEntry_ApplyToBalanceOverflow(t *testing.T) {
	debit := domain.JournalEntry{EntryType: domain.Debit}
	credit := domain.JournalEntry{EntryType: domain.Credit}

	_, err := debit.ApplyToBalance(math.MaxInt64, 1)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)

	_, err = credit.ApplyToBalance(math.MinInt64, 1)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)

	got, err := credit.ApplyToBalance(300, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)
}
