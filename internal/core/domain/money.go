package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ErrAmountOverflow is returned when integer minor-unit arithmetic leaves the int64 range.
var ErrAmountOverflow = errors.New("amount overflows int64 minor units")

// Money is an amount in minor currency units.
type Money struct {
	Amount   int64    `json:"amount"`
	Currency Currency `json:"currency"`
}

// NewMoney builds a Money value after validating the currency.
func NewMoney(amount int64, currency string) (Money, error) {
	c, err := NewCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: amount, Currency: c}, nil
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", apperrors.ErrValidation, other.Currency, m.Currency)
	}
	sum, err := AddMinorUnits(m.Amount, other.Amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return Money{Amount: sum, Currency: m.Currency}, nil
}

// Subtract returns m - other. Both values must share a currency.
func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", apperrors.ErrValidation, other.Currency, m.Currency)
	}
	if other.Amount == math.MinInt64 {
		return Money{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountOverflow)
	}
	diff, err := AddMinorUnits(m.Amount, -other.Amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return Money{Amount: diff, Currency: m.Currency}, nil
}

// Major returns the amount in major units, e.g. 12345 NOK minor units -> 123.45.
func (m Money) Major() decimal.Decimal {
	return decimal.New(m.Amount, -m.Currency.Exponent())
}

func (m Money) String() string {
	return m.Major().StringFixed(m.Currency.Exponent()) + " " + m.Currency.Code()
}

// AddMinorUnits adds two minor-unit amounts, failing instead of wrapping around.
func AddMinorUnits(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}
