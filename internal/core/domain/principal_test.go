package domain_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrincipal(t *testing.T) *domain.Principal {
	t.Helper()
	p, err := domain.NewPrincipal("zitadel", "u1")
	require.NoError(t, err)
	return p
}

func TestPrincipal_Identities(t *testing.T) {
	p := newTestPrincipal(t)
	require.Len(t, p.Identities, 1)
	assert.Equal(t, p.PrincipalID, p.Identities[0].PrincipalID)

	_, err := p.AddIdentity("zitadel", "u1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = p.AddIdentity("", "u1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.AddIdentity("entra", "u1")
	require.NoError(t, err)

	_, err = p.RemoveIdentity("entra", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	removed, err := p.RemoveIdentity("zitadel", "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", removed.ExternalID)
	assert.False(t, p.HasIdentity("zitadel", "u1"))
}

func TestPrincipal_RemoveLastIdentityAlwaysConflicts(t *testing.T) {
	for _, pair := range [][2]string{{"zitadel", "u1"}, {"zitadel", "other"}, {"nope", "nope"}} {
		p := newTestPrincipal(t)
		_, err := p.RemoveIdentity(pair[0], pair[1])
		assert.ErrorIs(t, err, apperrors.ErrConflict, "pair %v", pair)
		assert.Len(t, p.Identities, 1)
	}
}

func TestPrincipal_Roles(t *testing.T) {
	p := newTestPrincipal(t)

	_, err := p.AddRole("teller")
	require.NoError(t, err)
	_, err = p.AddRole("teller")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = p.RemoveRole("auditor")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = p.RemoveRole("teller")
	require.NoError(t, err)
	assert.Empty(t, p.RoleNames())
}

func TestPrincipal_Attributes(t *testing.T) {
	p := newTestPrincipal(t)

	first, err := p.SetAttribute("User", "user_id", "abc")
	require.NoError(t, err)
	assert.Equal(t, "user", first.Domain)

	second, err := p.SetAttribute("user", "user_id", "def")
	require.NoError(t, err)
	assert.Equal(t, first.AttributeID, second.AttributeID, "overwrite keeps the same row")
	require.Len(t, p.Attributes, 1)
	assert.Equal(t, "def", p.Attributes[0].Value)

	// same key in a different domain is a separate attribute
	_, err = p.SetAttribute("accounts", "user_id", "xyz")
	require.NoError(t, err)
	assert.Len(t, p.Attributes, 2)
	assert.Equal(t, map[string]string{"user_id": "def"}, p.DomainAttributes("user"))
	assert.Empty(t, p.DomainAttributes("unknown"))
	assert.NotNil(t, p.DomainAttributes("unknown"))

	_, err = p.SetAttribute("user", "big", strings.Repeat("x", 4001))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.RemoveAttribute("user", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = p.RemoveAttribute("USER", "user_id")
	require.NoError(t, err)
	assert.Len(t, p.Attributes, 1)
}

func TestPrincipal_RemoveMatchesTrimmedInput(t *testing.T) {
	p := newTestPrincipal(t)

	_, err := p.AddIdentity(" entra ", " u2 ")
	require.NoError(t, err)
	_, err = p.RemoveIdentity(" entra ", " u2 ")
	require.NoError(t, err)
	assert.Len(t, p.Identities, 1)

	_, err = p.AddRole(" admin ")
	require.NoError(t, err)
	_, err = p.RemoveRole(" admin ")
	require.NoError(t, err)
	assert.Empty(t, p.RoleNames())

	_, err = p.SetAttribute(" User ", " user_id ", "abc")
	require.NoError(t, err)
	_, err = p.RemoveAttribute("user", " user_id ")
	require.NoError(t, err)
	assert.Empty(t, p.Attributes)
}
