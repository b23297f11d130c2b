package mapping

import (
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row. Entries are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TransactionType: string(d.Type),
		Status:          string(d.Status),
		ReferenceNumber: d.ReferenceNumber,
		Description:     d.Description,
		Amount:          d.Amount,
		CurrencyCode:    d.Currency.Code(),
		AuditFields:     ToModelAuditFields(d.CreatedAt, d.LastUpdatedAt),
	}
}

// ToModelJournalEntry converts a domain JournalEntry to its row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		ParticipantID: d.ParticipantID,
		EntryType:     string(d.EntryType),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a journal entry row to the domain type.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		ParticipantID: m.ParticipantID,
		EntryType:     domain.EntryType(m.EntryType),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransaction converts a transaction row and its entry rows to the domain aggregate.
func ToDomainTransaction(m models.Transaction, entries []models.JournalEntry) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		Type:            domain.TransactionType(m.TransactionType),
		Status:          domain.TransactionStatus(m.Status),
		ReferenceNumber: m.ReferenceNumber,
		Description:     m.Description,
		Amount:          m.Amount,
		Currency:        domain.Currency(m.CurrencyCode),
		Entries:         make([]domain.JournalEntry, len(entries)),
		CreatedAt:       m.CreatedAt,
		LastUpdatedAt:   m.LastUpdatedAt,
	}
	for i, e := range entries {
		d.Entries[i] = ToDomainJournalEntry(e)
	}
	return d
}
