package access

import (
	"fmt"
	"sort"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// Registry maps domain names to their resolvers. It is built once at startup
// and only read afterwards, so it needs no locking.
type Registry struct {
	resolvers map[string]AttributeResolver
}

// NewRegistry registers the given resolvers. Domain names are case-insensitive
// and must be unique.
func NewRegistry(resolvers ...AttributeResolver) (*Registry, error) {
	r := &Registry{resolvers: make(map[string]AttributeResolver, len(resolvers))}
	for _, res := range resolvers {
		name := domain.NormalizeDomain(res.Domain())
		if name == "" {
			return nil, fmt.Errorf("attribute resolver %T has an empty domain", res)
		}
		if _, exists := r.resolvers[name]; exists {
			return nil, fmt.Errorf("attribute resolver for domain %q registered twice", name)
		}
		r.resolvers[name] = res
	}
	return r, nil
}

// Lookup finds the resolver for a domain.
func (r *Registry) Lookup(domainName string) (AttributeResolver, bool) {
	res, ok := r.resolvers[domain.NormalizeDomain(domainName)]
	return res, ok
}

// Domains lists the registered domain names in sorted order.
func (r *Registry) Domains() []string {
	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the request-scoped view of p. Every registered domain gets an
// entry, including domains for which p stores nothing.
func (r *Registry) Resolve(p *domain.Principal) *domain.ResolvedPrincipal {
	resolved := &domain.ResolvedPrincipal{
		PrincipalID: p.PrincipalID,
		Identities:  make([]domain.ResolvedIdentity, 0, len(p.Identities)),
		Roles:       p.RoleNames(),
		Attributes:  make(map[string]any, len(r.resolvers)),
	}
	for _, id := range p.Identities {
		resolved.Identities = append(resolved.Identities, domain.ResolvedIdentity{
			Provider:   id.Provider,
			ExternalID: id.ExternalID,
		})
	}
	for name, res := range r.resolvers {
		resolved.Attributes[name] = res.Resolve(p.DomainAttributes(name))
	}
	return resolved
}

// Attributes returns the typed attribute object of a resolved principal for a domain.
func Attributes[T any](rp *domain.ResolvedPrincipal, domainName string) (T, bool) {
	var zero T
	if rp == nil {
		return zero, false
	}
	v, ok := rp.Attribute(domainName)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
