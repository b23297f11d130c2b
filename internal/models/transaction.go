package models

import "time"

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string `db:"transaction_id"`   // Primary Key (UUID)
	TransactionType string `db:"transaction_type"` // DEPOSIT, WITHDRAWAL, TRANSFER, FEE or INTEREST
	Status          string `db:"status"`
	ReferenceNumber string `db:"reference_number"` // Unique
	Description     string `db:"description"`
	Amount          int64  `db:"amount"` // Minor units, always positive
	CurrencyCode    string `db:"currency_code"`
	AuditFields
}

// JournalEntry is a row of the journal_entries table. It carries no amount of its own.
type JournalEntry struct {
	EntryID       string    `db:"entry_id"`
	TransactionID string    `db:"transaction_id"` // FK -> transactions (ON DELETE RESTRICT)
	ParticipantID string    `db:"participant_id"`
	EntryType     string    `db:"entry_type"` // DEBIT or CREDIT
	CreatedAt     time.Time `db:"created_at"`
}
