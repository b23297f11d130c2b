package domain

import (
	"math"
	"time"
)

// EntryType indicates the direction of a journal entry against its participant.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry is one directional leg of a Transaction against one participant.
// It never carries an amount of its own; the amount lives on the owning Transaction.
type JournalEntry struct {
	EntryID       string    `json:"entryID"`
	TransactionID string    `json:"transactionID"`
	ParticipantID string    `json:"participantID"` // opaque account reference
	EntryType     EntryType `json:"entryType"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SignedAmount returns the contribution of this entry to its participant's balance:
// +amount for a debit, -amount for a credit.
func (e JournalEntry) SignedAmount(amount int64) int64 {
	if e.EntryType == Credit {
		return -amount
	}
	return amount
}

// ApplyToBalance folds the entry into a running balance, rejecting int64 overflow.
func (e JournalEntry) ApplyToBalance(balance, amount int64) (int64, error) {
	if e.EntryType == Credit && amount == math.MinInt64 {
		return 0, ErrAmountOverflow
	}
	return AddMinorUnits(balance, e.SignedAmount(amount))
}
