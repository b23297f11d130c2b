package models

import "time"

// Account is a row of the accounts table. The balance is never stored.
type Account struct {
	AccountID    string `db:"account_id"`
	AccountType  string `db:"account_type"`
	Status       string `db:"status"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}

// AccountHolder is a row of the account_holders table, unique on (account_id, holder_id).
type AccountHolder struct {
	HolderRecordID string    `db:"holder_record_id"`
	AccountID      string    `db:"account_id"`
	HolderID       string    `db:"holder_id"`
	HolderType     string    `db:"holder_type"`
	CreatedAt      time.Time `db:"created_at"`
}
