package services

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// PrincipalReaderSvc defines read operations for principals
type PrincipalReaderSvc interface {
	GetPrincipal(ctx context.Context, principalID string) (*domain.Principal, error)
	GetPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error)
	ListPrincipals(ctx context.Context, params dto.ListPrincipalsParams) ([]domain.Principal, error)
}

// PrincipalWriterSvc defines write operations for principals
type PrincipalWriterSvc interface {
	// CreatePrincipal creates a principal bound to an initial identity.
	CreatePrincipal(ctx context.Context, req dto.IdentityRequest) (*domain.Principal, error)
	DeletePrincipal(ctx context.Context, principalID string) error

	AddIdentity(ctx context.Context, principalID string, req dto.IdentityRequest) (*domain.Principal, error)
	RemoveIdentity(ctx context.Context, principalID, provider, externalID string) (*domain.Principal, error)

	AddRole(ctx context.Context, principalID string, req dto.RoleRequest) (*domain.Principal, error)
	RemoveRole(ctx context.Context, principalID, role string) (*domain.Principal, error)

	// SetAttribute validates the value against the domain's registered resolver and upserts it.
	// Domains without a resolver are rejected with apperrors.ErrNotFound.
	SetAttribute(ctx context.Context, principalID string, req dto.SetAttributeRequest) (*domain.Principal, error)
	RemoveAttribute(ctx context.Context, principalID, attrDomain, key string) (*domain.Principal, error)
}

// PrincipalResolverSvc turns an external identity into a resolved principal
type PrincipalResolverSvc interface {
	// ResolvePrincipal loads the principal bound to (provider, externalID) and resolves
	// its attributes through every registered resolver.
	ResolvePrincipal(ctx context.Context, provider, externalID string) (*domain.ResolvedPrincipal, error)
}

// PrincipalSvcFacade combines all principal-related service interfaces
type PrincipalSvcFacade interface {
	PrincipalReaderSvc
	PrincipalWriterSvc
	PrincipalResolverSvc
}
