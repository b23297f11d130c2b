package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
)

// Currency is a three-letter currency code such as "NOK", always uppercase.
type Currency string

// minor-unit exponents that differ from the usual 2
var currencyExponents = map[Currency]int32{
	"JPY": 0, "KRW": 0, "ISK": 0, "CLP": 0, "VND": 0,
	"BHD": 3, "KWD": 3, "OMR": 3, "JOD": 3, "TND": 3,
}

// NewCurrency validates and normalizes a currency code.
func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be exactly 3 letters, got %q", apperrors.ErrValidation, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code must contain only letters, got %q", apperrors.ErrValidation, code)
		}
	}
	return Currency(code), nil
}

// Code returns the currency code as a string.
func (c Currency) Code() string {
	return string(c)
}

// Exponent returns the number of minor-unit digits of the currency.
func (c Currency) Exponent() int32 {
	if exp, ok := currencyExponents[c]; ok {
		return exp
	}
	return 2
}
