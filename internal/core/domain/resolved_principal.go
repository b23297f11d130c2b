package domain

// ResolvedIdentity is the public view of a bound identity.
type ResolvedIdentity struct {
	Provider   string `json:"provider"`
	ExternalID string `json:"externalID"`
}

// ResolvedPrincipal is the request-scoped view of a principal used by authorization code.
// Attributes maps each registered domain to that domain's typed attribute object.
// It is rebuilt on every resolution and never persisted.
type ResolvedPrincipal struct {
	PrincipalID string             `json:"principalID"`
	Identities  []ResolvedIdentity `json:"identities"`
	Roles       []string           `json:"roles"`
	Attributes  map[string]any     `json:"attributes"`
}

// HasRole reports whether the resolved principal holds role.
func (r *ResolvedPrincipal) HasRole(role string) bool {
	for _, name := range r.Roles {
		if name == role {
			return true
		}
	}
	return false
}

// Attribute returns the typed object for a domain.
func (r *ResolvedPrincipal) Attribute(domainName string) (any, bool) {
	v, ok := r.Attributes[NormalizeDomain(domainName)]
	return v, ok
}
