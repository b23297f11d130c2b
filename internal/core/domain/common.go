package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
)

// requireText trims value and checks that it is non-empty and at most maxLen runes long.
func requireText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidation, field, maxLen)
	}
	return value, nil
}

// optionalText trims value and enforces maxLen when it is present.
func optionalText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidation, field, maxLen)
	}
	return value, nil
}
