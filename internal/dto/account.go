package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/utils"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	AccountType  string `json:"accountType" binding:"required,oneof=CHECKING SAVINGS LOAN INVESTMENT"`
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	HolderID     string `json:"holderID" binding:"required,max=100"`
	HolderType   string `json:"holderType" binding:"required,holdertype"`
}

// AddAccountHolderRequest links another holder to an account.
type AddAccountHolderRequest struct {
	HolderID   string `json:"holderID" binding:"required,max=100"`
	HolderType string `json:"holderType" binding:"required,holdertype"`
}

// AccountHolderResponse defines the data returned for an account holder.
type AccountHolderResponse struct {
	HolderRecordID string            `json:"holderRecordID"`
	HolderID       string            `json:"holderID"`
	HolderType     domain.HolderType `json:"holderType"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// AccountResponse defines the data returned for an account, including its derived balance.
type AccountResponse struct {
	AccountID        string                  `json:"accountID"`
	AccountType      domain.AccountType      `json:"accountType"`
	Status           domain.AccountStatus    `json:"status"`
	CurrencyCode     string                  `json:"currencyCode"`
	Holders          []AccountHolderResponse `json:"holders"`
	Balance          int64                   `json:"balance"` // minor units
	BalanceFormatted string                  `json:"balanceFormatted"`
	CreatedAt        time.Time               `json:"createdAt"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountHolderResponse converts a domain.AccountHolder to its DTO.
func ToAccountHolderResponse(h domain.AccountHolder) AccountHolderResponse {
	return AccountHolderResponse{
		HolderRecordID: h.HolderRecordID,
		HolderID:       h.HolderID,
		HolderType:     h.HolderType,
		CreatedAt:      h.CreatedAt,
	}
}

// ToAccountResponse converts a domain.AccountWithBalance to AccountResponse DTO
func ToAccountResponse(acc *domain.AccountWithBalance) AccountResponse {
	holders := make([]AccountHolderResponse, len(acc.Holders))
	for i, h := range acc.Holders {
		holders[i] = ToAccountHolderResponse(h)
	}
	return AccountResponse{
		AccountID:        acc.AccountID,
		AccountType:      acc.Type,
		Status:           acc.Status,
		CurrencyCode:     acc.Currency.Code(),
		Holders:          holders,
		Balance:          acc.Balance,
		BalanceFormatted: utils.FormatMinorUnits(acc.Balance, acc.Currency),
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to DTOs.
func ToListAccountResponse(accounts []domain.AccountWithBalance) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
