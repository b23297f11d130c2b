package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/utils"
)

// DepositRequest moves money into an account from outside the ledger.
type DepositRequest struct {
	DestinationAccountID string `json:"destinationAccountID" binding:"required,max=100"`
	Amount               int64  `json:"amount" binding:"required,gt=0"` // minor units
	CurrencyCode         string `json:"currencyCode" binding:"required,currency"`
	Description          string `json:"description" binding:"max=500"`
}

// WithdrawalRequest moves money out of an account.
type WithdrawalRequest struct {
	SourceAccountID string `json:"sourceAccountID" binding:"required,max=100"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	CurrencyCode    string `json:"currencyCode" binding:"required,currency"`
	Description     string `json:"description" binding:"max=500"`
}

// TransferRequest moves money between two different accounts.
type TransferRequest struct {
	SourceAccountID      string `json:"sourceAccountID" binding:"required,max=100"`
	DestinationAccountID string `json:"destinationAccountID" binding:"required,max=100"`
	Amount               int64  `json:"amount" binding:"required,gt=0"`
	CurrencyCode         string `json:"currencyCode" binding:"required,currency"`
	Description          string `json:"description" binding:"max=500"`
}

// ChargeRequest is used for fees (decrease the account balance) and interest (increase it).
type ChargeRequest struct {
	AccountID    string `json:"accountID" binding:"required,max=100"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	Description  string `json:"description" binding:"max=500"`
}

// ListTransactionsParams defines query parameters for listing a participant's transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalEntryResponse is one leg of a transaction.
type JournalEntryResponse struct {
	EntryID       string           `json:"entryID"`
	ParticipantID string           `json:"participantID"`
	EntryType     domain.EntryType `json:"entryType"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	Type            domain.TransactionType   `json:"type"`
	Status          domain.TransactionStatus `json:"status"`
	ReferenceNumber string                   `json:"referenceNumber"`
	Description     string                   `json:"description"`
	Amount          int64                    `json:"amount"`
	AmountFormatted string                   `json:"amountFormatted"`
	Currency        string                   `json:"currency"`
	JournalEntries  []JournalEntryResponse   `json:"journalEntries"`
	CreatedAt       time.Time                `json:"createdAt"`
	LastUpdatedAt   time.Time                `json:"lastUpdatedAt"`
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// BalanceResponse is the derived balance of a participant in minor units.
type BalanceResponse struct {
	ParticipantID string `json:"participantID"`
	Balance       int64  `json:"balance"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	entries := make([]JournalEntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = JournalEntryResponse{
			EntryID:       e.EntryID,
			ParticipantID: e.ParticipantID,
			EntryType:     e.EntryType,
			CreatedAt:     e.CreatedAt,
		}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		Type:            t.Type,
		Status:          t.Status,
		ReferenceNumber: t.ReferenceNumber,
		Description:     t.Description,
		Amount:          t.Amount,
		AmountFormatted: utils.FormatMinorUnits(t.Amount, t.Currency),
		Currency:        t.Currency.Code(),
		JournalEntries:  entries,
		CreatedAt:       t.CreatedAt,
		LastUpdatedAt:   t.LastUpdatedAt,
	}
}

// ToListTransactionsResponse converts a page of transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		res.Transactions[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
