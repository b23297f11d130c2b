package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID      string    `db:"user_id"`
	GivenName   string    `db:"given_name"`
	FamilyName  string    `db:"family_name"`
	DateOfBirth time.Time `db:"date_of_birth"`
	AuditFields
}

// UserEmail is a row of the user_emails table, unique on (user_id, address).
type UserEmail struct {
	EmailID   string    `db:"email_id"`
	UserID    string    `db:"user_id"`
	Address   string    `db:"address"`
	EmailType string    `db:"email_type"`
	CreatedAt time.Time `db:"created_at"`
}

// UserAddress is a row of the user_addresses table.
type UserAddress struct {
	AddressID  string         `db:"address_id"`
	UserID     string         `db:"user_id"`
	Street     string         `db:"street"`
	City       string         `db:"city"`
	PostalCode string         `db:"postal_code"`
	Country    string         `db:"country"`
	Region     sql.NullString `db:"region"` // Nullable
	CreatedAt  time.Time      `db:"created_at"`
}
