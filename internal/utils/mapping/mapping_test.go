package mapping_test

import (
	"testing"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/models"
	"github.com/SscSPs/banking_backoffice/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRowsRebuildAggregate(t *testing.T) {
	txn, err := domain.NewTransfer("a", "b", 250, "nok", "rent")
	require.NoError(t, err)

	row := mapping.ToModelTransaction(*txn)
	entries := make([]models.JournalEntry, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = mapping.ToModelJournalEntry(e)
	}
	assert.Equal(t, "NOK", row.CurrencyCode)
	assert.Equal(t, "TRANSFER", row.TransactionType)

	rebuilt := mapping.ToDomainTransaction(row, entries)
	assert.Equal(t, *txn, rebuilt)
}

func TestUserAddressRegionIsNullable(t *testing.T) {
	addr, err := domain.NewAddress("Karl Johans gate 1", "Oslo", "0154", "no", "")
	require.NoError(t, err)
	ua := domain.UserAddress{AddressID: "a1", UserID: "u1", Address: addr}

	row := mapping.ToModelUserAddress(ua)
	assert.False(t, row.Region.Valid)

	user := mapping.ToDomainUser(models.User{UserID: "u1"}, nil, []models.UserAddress{row})
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, "", user.Addresses[0].Address.Region)
	assert.Equal(t, "NO", user.Addresses[0].Address.Country)
	assert.Empty(t, user.Emails)
}
