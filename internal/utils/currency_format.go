package utils

import (
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders an integer minor-unit amount in major units with the
// currency's precision.
// Example: 12345 NOK returns "123.45"
// Example: 12345 JPY returns "12345"
func FormatMinorUnits(amount int64, currency domain.Currency) string {
	return FormatWithPrecision(decimal.New(amount, -currency.Exponent()), currency.Exponent())
}

// FormatWithPrecision formats an amount with the given number of decimal places.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
