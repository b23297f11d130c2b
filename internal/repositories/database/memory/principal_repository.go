package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
)

// PrincipalRepository stores principals with their identities, roles and attributes.
type PrincipalRepository struct {
	store *Store
}

// NewPrincipalRepository creates a principal repository over store.
func NewPrincipalRepository(store *Store) *PrincipalRepository {
	return &PrincipalRepository{store: store}
}

var _ portsrepo.PrincipalRepositoryFacade = (*PrincipalRepository)(nil)

func (r *PrincipalRepository) SavePrincipal(_ context.Context, principal domain.Principal) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.principals[principal.PrincipalID]; exists {
		return fmt.Errorf("%w: principal %s already exists", apperrors.ErrConflict, principal.PrincipalID)
	}
	for _, id := range principal.Identities {
		if r.boundLocked(id.Provider, id.ExternalID) != nil {
			return identityConflict(id.Provider, id.ExternalID)
		}
	}
	s.principals[principal.PrincipalID] = clonePrincipal(&principal)
	return nil
}

func (r *PrincipalRepository) FindPrincipalByID(_ context.Context, principalID string) (*domain.Principal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.principals[principalID]
	if !ok {
		return nil, fmt.Errorf("%w: principal %s", apperrors.ErrNotFound, principalID)
	}
	return clonePrincipal(p), nil
}

func (r *PrincipalRepository) FindPrincipalByIdentity(_ context.Context, provider, externalID string) (*domain.Principal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := r.boundLocked(provider, externalID)
	if p == nil {
		return nil, fmt.Errorf("%w: no principal bound to %s/%s", apperrors.ErrNotFound, provider, externalID)
	}
	return clonePrincipal(p), nil
}

func (r *PrincipalRepository) ListPrincipals(_ context.Context, limit int, offset int) ([]domain.Principal, error) {
	s := r.store
	s.mu.RLock()
	all := make([]domain.Principal, 0, len(s.principals))
	for _, p := range s.principals {
		all = append(all, *clonePrincipal(p))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].PrincipalID < all[j].PrincipalID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []domain.Principal{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *PrincipalRepository) IdentityExists(_ context.Context, provider, externalID string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return r.boundLocked(provider, externalID) != nil, nil
}

func (r *PrincipalRepository) DeletePrincipal(_ context.Context, principalID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.principals[principalID]; !ok {
		return fmt.Errorf("%w: principal %s", apperrors.ErrNotFound, principalID)
	}
	delete(s.principals, principalID)
	return nil
}

func (r *PrincipalRepository) AddIdentity(_ context.Context, identity domain.Identity) error {
	return r.mutate(identity.PrincipalID, func(p *domain.Principal) error {
		if r.boundLocked(identity.Provider, identity.ExternalID) != nil {
			return identityConflict(identity.Provider, identity.ExternalID)
		}
		p.Identities = append(p.Identities, identity)
		return nil
	})
}

func (r *PrincipalRepository) RemoveIdentity(_ context.Context, principalID, identityID string) error {
	return r.mutate(principalID, func(p *domain.Principal) error {
		for i, id := range p.Identities {
			if id.IdentityID == identityID {
				p.Identities = append(p.Identities[:i], p.Identities[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: identity %s", apperrors.ErrNotFound, identityID)
	})
}

func (r *PrincipalRepository) AddRole(_ context.Context, role domain.Role) error {
	return r.mutate(role.PrincipalID, func(p *domain.Principal) error {
		if p.HasRole(role.Name) {
			return fmt.Errorf("%w: principal %s already has role %s", apperrors.ErrConflict, p.PrincipalID, role.Name)
		}
		p.Roles = append(p.Roles, role)
		return nil
	})
}

func (r *PrincipalRepository) RemoveRole(_ context.Context, principalID, roleID string) error {
	return r.mutate(principalID, func(p *domain.Principal) error {
		for i, role := range p.Roles {
			if role.RoleID == roleID {
				p.Roles = append(p.Roles[:i], p.Roles[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: role %s", apperrors.ErrNotFound, roleID)
	})
}

func (r *PrincipalRepository) UpsertAttribute(_ context.Context, attribute domain.Attribute) error {
	return r.mutate(attribute.PrincipalID, func(p *domain.Principal) error {
		for i := range p.Attributes {
			a := &p.Attributes[i]
			if a.Domain == attribute.Domain && a.Key == attribute.Key {
				a.Value = attribute.Value
				a.LastUpdatedAt = attribute.LastUpdatedAt
				return nil
			}
		}
		p.Attributes = append(p.Attributes, attribute)
		return nil
	})
}

func (r *PrincipalRepository) RemoveAttribute(_ context.Context, principalID, attributeID string) error {
	return r.mutate(principalID, func(p *domain.Principal) error {
		for i, a := range p.Attributes {
			if a.AttributeID == attributeID {
				p.Attributes = append(p.Attributes[:i], p.Attributes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: attribute %s", apperrors.ErrNotFound, attributeID)
	})
}

func (r *PrincipalRepository) mutate(principalID string, fn func(*domain.Principal) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.principals[principalID]
	if !ok {
		return fmt.Errorf("%w: principal %s", apperrors.ErrNotFound, principalID)
	}
	return fn(p)
}

// boundLocked returns the principal owning the identity. The caller holds the store lock.
func (r *PrincipalRepository) boundLocked(provider, externalID string) *domain.Principal {
	for _, p := range r.store.principals {
		if p.HasIdentity(provider, externalID) {
			return p
		}
	}
	return nil
}

func identityConflict(provider, externalID string) error {
	return fmt.Errorf("%w: identity %s/%s is already bound to a principal", apperrors.ErrConflict, provider, externalID)
}
