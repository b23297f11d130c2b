package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/access"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// principalService manages principals and resolves them for access decisions.
type principalService struct {
	BaseService
	principalRepo portsrepo.PrincipalRepositoryFacade
	registry      *access.Registry
}

// NewPrincipalService creates a new principal service.
func NewPrincipalService(principalRepo portsrepo.PrincipalRepositoryFacade, registry *access.Registry) portssvc.PrincipalSvcFacade {
	return &principalService{
		principalRepo: principalRepo,
		registry:      registry,
	}
}

var _ portssvc.PrincipalSvcFacade = (*principalService)(nil)

func (s *principalService) GetPrincipal(ctx context.Context, principalID string) (*domain.Principal, error) {
	return s.principalRepo.FindPrincipalByID(ctx, principalID)
}

func (s *principalService) GetPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error) {
	provider, externalID, err := domain.ValidateIdentity(provider, externalID)
	if err != nil {
		return nil, err
	}
	return s.principalRepo.FindPrincipalByIdentity(ctx, provider, externalID)
}

func (s *principalService) ListPrincipals(ctx context.Context, params dto.ListPrincipalsParams) ([]domain.Principal, error) {
	principals, err := s.principalRepo.ListPrincipals(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list principals")
		return nil, err
	}
	return principals, nil
}

func (s *principalService) CreatePrincipal(ctx context.Context, req dto.IdentityRequest) (*domain.Principal, error) {
	principal, err := domain.NewPrincipal(req.Provider, req.ExternalID)
	if err != nil {
		return nil, err
	}
	identity := principal.Identities[0]
	if err := s.ensureIdentityFree(ctx, identity.Provider, identity.ExternalID); err != nil {
		return nil, err
	}
	if err := s.principalRepo.SavePrincipal(ctx, *principal); err != nil {
		s.LogError(ctx, err, "Failed to save principal", slog.String("provider", identity.Provider))
		return nil, err
	}
	s.LogInfo(ctx, "Principal created",
		slog.String("principal_id", principal.PrincipalID),
		slog.String("provider", identity.Provider))
	return principal, nil
}

func (s *principalService) DeletePrincipal(ctx context.Context, principalID string) error {
	if _, err := s.principalRepo.FindPrincipalByID(ctx, principalID); err != nil {
		return err
	}
	if err := s.principalRepo.DeletePrincipal(ctx, principalID); err != nil {
		s.LogError(ctx, err, "Failed to delete principal", slog.String("principal_id", principalID))
		return err
	}
	s.LogInfo(ctx, "Principal deleted", slog.String("principal_id", principalID))
	return nil
}

func (s *principalService) AddIdentity(ctx context.Context, principalID string, req dto.IdentityRequest) (*domain.Principal, error) {
	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	identity, err := principal.AddIdentity(req.Provider, req.ExternalID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureIdentityFree(ctx, identity.Provider, identity.ExternalID); err != nil {
		return nil, err
	}
	if err := s.principalRepo.AddIdentity(ctx, identity); err != nil {
		s.LogError(ctx, err, "Failed to bind identity", slog.String("principal_id", principalID))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) RemoveIdentity(ctx context.Context, principalID, provider, externalID string) (*domain.Principal, error) {
	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	identity, err := principal.RemoveIdentity(provider, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.principalRepo.RemoveIdentity(ctx, principalID, identity.IdentityID); err != nil {
		s.LogError(ctx, err, "Failed to unbind identity", slog.String("principal_id", principalID))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) AddRole(ctx context.Context, principalID string, req dto.RoleRequest) (*domain.Principal, error) {
	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	role, err := principal.AddRole(req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.principalRepo.AddRole(ctx, role); err != nil {
		s.LogError(ctx, err, "Failed to grant role", slog.String("principal_id", principalID), slog.String("role", role.Name))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) RemoveRole(ctx context.Context, principalID, role string) (*domain.Principal, error) {
	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	removed, err := principal.RemoveRole(role)
	if err != nil {
		return nil, err
	}
	if err := s.principalRepo.RemoveRole(ctx, principalID, removed.RoleID); err != nil {
		s.LogError(ctx, err, "Failed to revoke role", slog.String("principal_id", principalID), slog.String("role", role))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) SetAttribute(ctx context.Context, principalID string, req dto.SetAttributeRequest) (*domain.Principal, error) {
	attrDomain, key, value, err := domain.ValidateAttribute(req.Domain, req.Key, req.RawValue())
	if err != nil {
		return nil, err
	}
	resolver, ok := s.registry.Lookup(attrDomain)
	if !ok {
		return nil, fmt.Errorf("%w: no attribute resolver registered for domain %q", apperrors.ErrNotFound, attrDomain)
	}
	if err := resolver.Validate(key, value); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	attr, err := principal.SetAttribute(attrDomain, key, value)
	if err != nil {
		return nil, err
	}
	if err := s.principalRepo.UpsertAttribute(ctx, attr); err != nil {
		s.LogError(ctx, err, "Failed to store attribute",
			slog.String("principal_id", principalID),
			slog.String("domain", attrDomain),
			slog.String("key", key))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) RemoveAttribute(ctx context.Context, principalID, attrDomain, key string) (*domain.Principal, error) {
	principal, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	attr, err := principal.RemoveAttribute(attrDomain, key)
	if err != nil {
		return nil, err
	}
	if err := s.principalRepo.RemoveAttribute(ctx, principalID, attr.AttributeID); err != nil {
		s.LogError(ctx, err, "Failed to remove attribute", slog.String("principal_id", principalID))
		return nil, err
	}
	return principal, nil
}

func (s *principalService) ResolvePrincipal(ctx context.Context, provider, externalID string) (*domain.ResolvedPrincipal, error) {
	principal, err := s.GetPrincipalByIdentity(ctx, provider, externalID)
	if err != nil {
		return nil, err
	}
	resolved := s.registry.Resolve(principal)
	s.LogDebug(ctx, "Principal resolved",
		slog.String("principal_id", resolved.PrincipalID),
		slog.Int("roles", len(resolved.Roles)))
	return resolved, nil
}

func (s *principalService) ensureIdentityFree(ctx context.Context, provider, externalID string) error {
	exists, err := s.principalRepo.IdentityExists(ctx, provider, externalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check identity", slog.String("provider", provider))
		return err
	}
	if exists {
		return fmt.Errorf("%w: identity %s/%s is already bound to a principal", apperrors.ErrConflict, provider, externalID)
	}
	return nil
}
