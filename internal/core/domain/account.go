package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/google/uuid"
)

// AccountType represents the product category of an account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Loan       AccountType = "LOAN"
	Investment AccountType = "INVESTMENT"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// HolderType describes how a holder relates to an account.
type HolderType string

const (
	HolderPrimary         HolderType = "PRIMARY"
	HolderBeneficiary     HolderType = "BENEFICIARY"
	HolderGuardian        HolderType = "GUARDIAN"
	HolderPowerOfAttorney HolderType = "POWER_OF_ATTORNEY"
	HolderCustodian       HolderType = "CUSTODIAN"
	HolderOperating       HolderType = "OPERATING"
	HolderTrust           HolderType = "TRUST"
	HolderEscrow          HolderType = "ESCROW"
	HolderInvestment      HolderType = "INVESTMENT"
	HolderPayroll         HolderType = "PAYROLL"
)

var accountTypes = map[AccountType]struct{}{
	Checking: {}, Savings: {}, Loan: {}, Investment: {},
}

var holderTypes = map[HolderType]struct{}{
	HolderPrimary: {}, HolderBeneficiary: {}, HolderGuardian: {}, HolderPowerOfAttorney: {}, HolderCustodian: {},
	HolderOperating: {}, HolderTrust: {}, HolderEscrow: {}, HolderInvestment: {}, HolderPayroll: {},
}

// ParseAccountType normalizes and validates an account type name.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := accountTypes[t]; !ok {
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// ParseHolderType normalizes and validates a holder type name.
func ParseHolderType(s string) (HolderType, error) {
	t := HolderType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := holderTypes[t]; !ok {
		return "", fmt.Errorf("%w: unknown holder type %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// AccountHolder links a holder (a user or other party) to an account.
type AccountHolder struct {
	HolderRecordID string     `json:"holderRecordID"`
	AccountID      string     `json:"accountID"`
	HolderID       string     `json:"holderID"`
	HolderType     HolderType `json:"holderType"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Account is a ledger participant. Its balance is never stored; it is derived from journal entries.
type Account struct {
	AccountID     string          `json:"accountID"`
	Type          AccountType     `json:"type"`
	Status        AccountStatus   `json:"status"`
	Currency      Currency        `json:"currency"`
	Holders       []AccountHolder `json:"holders"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// AccountWithBalance pairs an account with its balance derived from the ledger.
type AccountWithBalance struct {
	Account
	Balance int64 `json:"balance"`
}

// NewAccount opens an active account with a single initial holder.
func NewAccount(accountType AccountType, currency string, holderID string, holderType HolderType) (*Account, error) {
	if _, ok := accountTypes[accountType]; !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	c, err := NewCurrency(currency)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	acc := &Account{
		AccountID:     uuid.NewString(),
		Type:          accountType,
		Status:        AccountActive,
		Currency:      c,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if _, err := acc.AddHolder(holderID, holderType); err != nil {
		return nil, err
	}
	return acc, nil
}

// Freeze blocks an active account.
func (a *Account) Freeze() error {
	switch a.Status {
	case AccountClosed:
		return fmt.Errorf("%w: cannot freeze closed account %s", apperrors.ErrInvalidOperation, a.AccountID)
	case AccountFrozen:
		return fmt.Errorf("%w: account %s is already frozen", apperrors.ErrInvalidOperation, a.AccountID)
	}
	a.setStatus(AccountFrozen)
	return nil
}

// Unfreeze reactivates a frozen account.
func (a *Account) Unfreeze() error {
	if a.Status != AccountFrozen {
		return fmt.Errorf("%w: cannot unfreeze account %s with status %s", apperrors.ErrInvalidOperation, a.AccountID, a.Status)
	}
	a.setStatus(AccountActive)
	return nil
}

// Close permanently closes the account.
func (a *Account) Close() error {
	if a.Status == AccountClosed {
		return fmt.Errorf("%w: account %s is already closed", apperrors.ErrInvalidOperation, a.AccountID)
	}
	a.setStatus(AccountClosed)
	return nil
}

// AddHolder attaches a new holder. A holder may appear only once per account.
func (a *Account) AddHolder(holderID string, holderType HolderType) (AccountHolder, error) {
	if a.Status == AccountClosed {
		return AccountHolder{}, fmt.Errorf("%w: cannot add holders to closed account %s", apperrors.ErrInvalidOperation, a.AccountID)
	}
	holderID, err := requireText("holder id", holderID, 100)
	if err != nil {
		return AccountHolder{}, err
	}
	if _, ok := holderTypes[holderType]; !ok {
		return AccountHolder{}, fmt.Errorf("%w: unknown holder type %q", apperrors.ErrValidation, holderType)
	}
	if a.HasHolder(holderID) {
		return AccountHolder{}, fmt.Errorf("%w: holder %s is already linked to account %s", apperrors.ErrConflict, holderID, a.AccountID)
	}
	holder := AccountHolder{
		HolderRecordID: uuid.NewString(),
		AccountID:      a.AccountID,
		HolderID:       holderID,
		HolderType:     holderType,
		CreatedAt:      time.Now().UTC(),
	}
	a.Holders = append(a.Holders, holder)
	return holder, nil
}

// RemoveHolder detaches a holder. The last holder cannot be removed.
func (a *Account) RemoveHolder(holderID string) (AccountHolder, error) {
	for i, h := range a.Holders {
		if h.HolderID != holderID {
			continue
		}
		if len(a.Holders) == 1 {
			return AccountHolder{}, fmt.Errorf("%w: cannot remove the last holder of account %s", apperrors.ErrInvalidOperation, a.AccountID)
		}
		a.Holders = append(a.Holders[:i], a.Holders[i+1:]...)
		return h, nil
	}
	return AccountHolder{}, fmt.Errorf("%w: holder %s is not linked to account %s", apperrors.ErrNotFound, holderID, a.AccountID)
}

// HasHolder reports whether holderID is linked to the account.
func (a *Account) HasHolder(holderID string) bool {
	for _, h := range a.Holders {
		if h.HolderID == holderID {
			return true
		}
	}
	return false
}

func (a *Account) setStatus(s AccountStatus) {
	a.Status = s
	a.LastUpdatedAt = time.Now().UTC()
}
