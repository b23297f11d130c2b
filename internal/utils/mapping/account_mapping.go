package mapping

import (
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/models"
)

// ToModelAccount converts a domain Account to its row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		AccountType:  string(d.Type),
		Status:       string(d.Status),
		CurrencyCode: d.Currency.Code(),
		AuditFields:  ToModelAuditFields(d.CreatedAt, d.LastUpdatedAt),
	}
}

// ToModelAccountHolder converts a domain AccountHolder to its row.
func ToModelAccountHolder(d domain.AccountHolder) models.AccountHolder {
	return models.AccountHolder{
		HolderRecordID: d.HolderRecordID,
		AccountID:      d.AccountID,
		HolderID:       d.HolderID,
		HolderType:     string(d.HolderType),
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainAccount converts an account row and its holder rows to the domain aggregate.
func ToDomainAccount(m models.Account, holders []models.AccountHolder) domain.Account {
	d := domain.Account{
		AccountID:     m.AccountID,
		Type:          domain.AccountType(m.AccountType),
		Status:        domain.AccountStatus(m.Status),
		Currency:      domain.Currency(m.CurrencyCode),
		Holders:       make([]domain.AccountHolder, len(holders)),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	for i, h := range holders {
		d.Holders[i] = domain.AccountHolder{
			HolderRecordID: h.HolderRecordID,
			AccountID:      h.AccountID,
			HolderID:       h.HolderID,
			HolderType:     domain.HolderType(h.HolderType),
			CreatedAt:      h.CreatedAt,
		}
	}
	return d
}
