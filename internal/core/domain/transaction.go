package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// TransactionType classifies the business event behind a transaction.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
	Fee        TransactionType = "FEE"
	Interest   TransactionType = "INTEREST"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionReversed  TransactionStatus = "REVERSED"
)

const maxDescriptionLength = 500

// Transaction is the ledger aggregate root. Amount and Currency are canonical for every
// entry it owns; entries are created only by the constructors below.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	ReferenceNumber string            `json:"referenceNumber"`
	Description     string            `json:"description"`
	Amount          int64             `json:"amount"` // minor units, always > 0
	Currency        Currency          `json:"currency"`
	Entries         []JournalEntry    `json:"entries"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`
}

type leg struct {
	role          string
	participantID string
	entryType     EntryType
}

// NewDeposit debits the destination participant.
func NewDeposit(destinationID string, amount int64, currency, description string) (*Transaction, error) {
	return newTransaction(Deposit, amount, currency, description, leg{"destination", destinationID, Debit})
}

// NewWithdrawal credits the source participant.
func NewWithdrawal(sourceID string, amount int64, currency, description string) (*Transaction, error) {
	return newTransaction(Withdrawal, amount, currency, description, leg{"source", sourceID, Credit})
}

// NewTransfer credits the source and debits the destination. The two must differ.
func NewTransfer(sourceID, destinationID string, amount int64, currency, description string) (*Transaction, error) {
	if strings.TrimSpace(sourceID) != "" && strings.TrimSpace(sourceID) == strings.TrimSpace(destinationID) {
		return nil, fmt.Errorf("%w: transfer source and destination must be different participants", apperrors.ErrValidation)
	}
	return newTransaction(Transfer, amount, currency, description,
		leg{"source", sourceID, Credit},
		leg{"destination", destinationID, Debit},
	)
}

// NewFee credits the charged participant.
func NewFee(participantID string, amount int64, currency, description string) (*Transaction, error) {
	return newTransaction(Fee, amount, currency, description, leg{"participant", participantID, Credit})
}

// NewInterest debits the participant receiving interest.
func NewInterest(participantID string, amount int64, currency, description string) (*Transaction, error) {
	return newTransaction(Interest, amount, currency, description, leg{"participant", participantID, Debit})
}

func newTransaction(kind TransactionType, amount int64, currencyCode, description string, legs ...leg) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	currency, err := NewCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	description, err = optionalText("description", description, maxDescriptionLength)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reference, err := NewReferenceNumber(now)
	if err != nil {
		return nil, err
	}

	txn := &Transaction{
		TransactionID:   uuid.NewString(),
		Type:            kind,
		Status:          TransactionPending,
		ReferenceNumber: reference,
		Description:     description,
		Amount:          amount,
		Currency:        currency,
		Entries:         make([]JournalEntry, 0, len(legs)),
		CreatedAt:       now,
		LastUpdatedAt:   now,
	}
	for _, l := range legs {
		participantID := strings.TrimSpace(l.participantID)
		if participantID == "" {
			return nil, fmt.Errorf("%w: %s participant is required", apperrors.ErrValidation, l.role)
		}
		txn.Entries = append(txn.Entries, JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			ParticipantID: participantID,
			EntryType:     l.entryType,
			CreatedAt:     now,
		})
	}
	return txn, nil
}

// NewReferenceNumber renders TXN-YYYYMMDD-XXXXXXXX where the suffix is taken from
// the random part of a ULID.
func NewReferenceNumber(at time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(at), ulid.DefaultEntropy())
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to generate reference number", err)
	}
	s := id.String()
	return fmt.Sprintf("TXN-%s-%s", at.UTC().Format("20060102"), s[len(s)-8:]), nil
}

// Complete moves a pending transaction to Completed.
func (t *Transaction) Complete() error {
	return t.settle("complete", TransactionCompleted)
}

// Fail moves a pending transaction to Failed.
func (t *Transaction) Fail() error {
	return t.settle("fail", TransactionFailed)
}

// Reverse moves a completed transaction to Reversed.
func (t *Transaction) Reverse() error {
	if t.Status != TransactionCompleted {
		return fmt.Errorf("%w: only completed transactions can be reversed, transaction %s is %s",
			apperrors.ErrInvalidOperation, t.TransactionID, t.Status)
	}
	t.Status = TransactionReversed
	t.LastUpdatedAt = time.Now().UTC()
	return nil
}

func (t *Transaction) settle(verb string, to TransactionStatus) error {
	if t.Status != TransactionPending {
		return fmt.Errorf("%w: cannot %s a transaction with status %s",
			apperrors.ErrInvalidOperation, verb, t.Status)
	}
	t.Status = to
	t.LastUpdatedAt = time.Now().UTC()
	return nil
}

// Money returns the canonical amount of the transaction.
func (t Transaction) Money() Money {
	return Money{Amount: t.Amount, Currency: t.Currency}
}

// ParticipantIDs lists the participants touched by the transaction in entry order.
func (t Transaction) ParticipantIDs() []string {
	ids := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		ids = append(ids, e.ParticipantID)
	}
	return ids
}

// BalanceEffect returns the net change the transaction makes to participantID's balance.
func (t Transaction) BalanceEffect(participantID string) (int64, error) {
	var effect int64
	for _, e := range t.Entries {
		if e.ParticipantID != participantID {
			continue
		}
		var err error
		if effect, err = e.ApplyToBalance(effect, t.Amount); err != nil {
			return 0, err
		}
	}
	return effect, nil
}
