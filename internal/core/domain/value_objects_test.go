package domain_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Currency
		wantErr bool
	}{
		{"nok", "NOK", false},
		{" usd ", "USD", false},
		{"US", "", true},
		{"EURO", "", true},
		{"U$D", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.NewCurrency(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, int32(0), domain.Currency("JPY").Exponent())
	assert.Equal(t, int32(2), domain.Currency("NOK").Exponent())
}

func TestMoney(t *testing.T) {
	a, err := domain.NewMoney(1050, "nok")
	require.NoError(t, err)
	b, err := domain.NewMoney(50, "NOK")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), sum.Amount)
	assert.Equal(t, "11.00 NOK", sum.String())

	diff, err := b.Subtract(a)
	require.NoError(t, err)
	assert.Equal(t, int64(-1000), diff.Amount)

	usd, err := domain.NewMoney(1, "USD")
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	huge := domain.Money{Amount: math.MaxInt64, Currency: "NOK"}
	_, err = huge.Add(b)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"valid mixed case", "Ola.Nordmann@Example.NO", false},
		{"empty", "", true},
		{"two ats", "a@b@c.no", true},
		{"no tld", "a@b", true},
		{"long local part", strings.Repeat("a", 65) + "@example.com", true},
		{"too long", strings.Repeat("a", 60) + "@" + strings.Repeat("b", 200) + ".com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := domain.NewEmail(tt.address, domain.EmailWork)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(tt.address), e.Address)
		})
	}

	_, err := domain.NewEmail("a@b.no", domain.EmailType("SPAM"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewNameAndAddress(t *testing.T) {
	_, err := domain.NewName("Ola", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	n, err := domain.NewName(" Ola ", "Nordmann")
	require.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", n.Full())

	_, err = domain.NewAddress("Karl Johans gate 1", "", "0154", "no", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	addr, err := domain.NewAddress("Karl Johans gate 1", "Oslo", "0154", "no", "")
	require.NoError(t, err)
	assert.Equal(t, "NO", addr.Country)
	assert.Empty(t, addr.Region)
}

func TestUser_EmailsAndAddresses(t *testing.T) {
	name, err := domain.NewName("Ola", "Nordmann")
	require.NoError(t, err)

	_, err = domain.NewUser(name, time.Now().Add(24*time.Hour), "ola@example.no")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	u, err := domain.NewUser(name, time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC), "ola@example.no")
	require.NoError(t, err)
	require.Len(t, u.Emails, 1)
	assert.Equal(t, domain.EmailPrimary, u.Emails[0].Email.Type)

	dup, err := domain.NewEmail("OLA@example.no", domain.EmailWork)
	require.NoError(t, err)
	_, err = u.AddEmail(dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.ErrorIs(t, u.RemoveEmail("missing"), apperrors.ErrGone)
	assert.ErrorIs(t, u.RemoveAddress("missing"), apperrors.ErrGone)

	addr, err := domain.NewAddress("Street 1", "Oslo", "0150", "NO", "Oslo")
	require.NoError(t, err)
	ua := u.AddAddress(addr)
	require.NoError(t, u.RemoveAddress(ua.AddressID))
	assert.Empty(t, u.Addresses)
}
