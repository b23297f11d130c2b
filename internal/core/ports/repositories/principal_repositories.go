package repositories

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// PrincipalReader defines read operations for principals
type PrincipalReader interface {
	// FindPrincipalByID retrieves a principal with its identities, roles and attributes.
	FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error)

	// FindPrincipalByIdentity retrieves the principal bound to an external identity.
	FindPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error)

	// ListPrincipals retrieves a page of principals ordered by creation time.
	ListPrincipals(ctx context.Context, limit int, offset int) ([]domain.Principal, error)

	// IdentityExists reports whether an identity is bound to any principal.
	IdentityExists(ctx context.Context, provider, externalID string) (bool, error)
}

// PrincipalWriter defines write operations for principals and their owned records
type PrincipalWriter interface {
	// SavePrincipal persists a new principal and its initial identities.
	SavePrincipal(ctx context.Context, principal domain.Principal) error

	// DeletePrincipal removes a principal and everything it owns.
	DeletePrincipal(ctx context.Context, principalID string) error

	// AddIdentity binds an identity. A pair bound elsewhere fails with apperrors.ErrConflict.
	AddIdentity(ctx context.Context, identity domain.Identity) error

	// RemoveIdentity unbinds an identity by its record id.
	RemoveIdentity(ctx context.Context, principalID, identityID string) error

	// AddRole grants a role.
	AddRole(ctx context.Context, role domain.Role) error

	// RemoveRole revokes a role by its record id.
	RemoveRole(ctx context.Context, principalID, roleID string) error

	// UpsertAttribute inserts or overwrites the attribute stored under (principal, domain, key).
	UpsertAttribute(ctx context.Context, attribute domain.Attribute) error

	// RemoveAttribute deletes an attribute by its record id.
	RemoveAttribute(ctx context.Context, principalID, attributeID string) error
}

// PrincipalRepositoryFacade combines all principal-related repository interfaces
type PrincipalRepositoryFacade interface {
	PrincipalReader
	PrincipalWriter
}
