package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/google/uuid"
)

const (
	maxProviderLength   = 200
	maxExternalIDLength = 200
	maxRoleLength       = 100
	maxDomainLength     = 100
	maxKeyLength        = 100
	maxValueLength      = 4000
)

// Identity binds an external login (provider + subject) to a principal.
// The (Provider, ExternalID) pair is unique across all principals.
type Identity struct {
	IdentityID  string    `json:"identityID"`
	PrincipalID string    `json:"principalID"`
	Provider    string    `json:"provider"`
	ExternalID  string    `json:"externalID"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Role is a named role granted to a principal.
type Role struct {
	RoleID      string    `json:"roleID"`
	PrincipalID string    `json:"principalID"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Attribute is a raw key/value scoped to an access-control domain.
// Value is either a plain string or JSON text; its shape is owned by the domain's resolver.
type Attribute struct {
	AttributeID   string    `json:"attributeID"`
	PrincipalID   string    `json:"principalID"`
	Domain        string    `json:"domain"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Principal is the canonical internal identity. It always has at least one identity.
type Principal struct {
	PrincipalID string      `json:"principalID"`
	Identities  []Identity  `json:"identities"`
	Roles       []Role      `json:"roles"`
	Attributes  []Attribute `json:"attributes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NormalizeDomain lowercases and trims an access-control domain name.
func NormalizeDomain(d string) string {
	return strings.ToLower(strings.TrimSpace(d))
}

// ValidateIdentity checks the provider and external id and returns trimmed values.
func ValidateIdentity(provider, externalID string) (string, string, error) {
	p, err := requireText("provider", provider, maxProviderLength)
	if err != nil {
		return "", "", err
	}
	e, err := requireText("external id", externalID, maxExternalIDLength)
	if err != nil {
		return "", "", err
	}
	return p, e, nil
}

// NewPrincipal creates a principal bound to its first identity.
func NewPrincipal(provider, externalID string) (*Principal, error) {
	p := &Principal{
		PrincipalID: uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := p.AddIdentity(provider, externalID); err != nil {
		return nil, err
	}
	return p, nil
}

// HasIdentity reports whether the pair is bound to this principal.
func (p *Principal) HasIdentity(provider, externalID string) bool {
	for _, id := range p.Identities {
		if id.Provider == provider && id.ExternalID == externalID {
			return true
		}
	}
	return false
}

// AddIdentity binds another identity. Global uniqueness is checked by the caller against storage.
func (p *Principal) AddIdentity(provider, externalID string) (Identity, error) {
	provider, externalID, err := ValidateIdentity(provider, externalID)
	if err != nil {
		return Identity{}, err
	}
	if p.HasIdentity(provider, externalID) {
		return Identity{}, fmt.Errorf("%w: identity %s/%s is already bound to principal %s",
			apperrors.ErrConflict, provider, externalID, p.PrincipalID)
	}
	id := Identity{
		IdentityID:  uuid.NewString(),
		PrincipalID: p.PrincipalID,
		Provider:    provider,
		ExternalID:  externalID,
		CreatedAt:   time.Now().UTC(),
	}
	p.Identities = append(p.Identities, id)
	return id, nil
}

// RemoveIdentity unbinds an identity. The last identity can never be removed.
func (p *Principal) RemoveIdentity(provider, externalID string) (Identity, error) {
	if len(p.Identities) <= 1 {
		return Identity{}, fmt.Errorf("%w: principal %s must keep at least one identity",
			apperrors.ErrConflict, p.PrincipalID)
	}
	provider, externalID = strings.TrimSpace(provider), strings.TrimSpace(externalID)
	for i, id := range p.Identities {
		if id.Provider == provider && id.ExternalID == externalID {
			p.Identities = append(p.Identities[:i], p.Identities[i+1:]...)
			return id, nil
		}
	}
	return Identity{}, fmt.Errorf("%w: identity %s/%s is not bound to principal %s",
		apperrors.ErrNotFound, provider, externalID, p.PrincipalID)
}

// HasRole reports whether the principal holds role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}

// AddRole grants a role.
func (p *Principal) AddRole(role string) (Role, error) {
	role, err := requireText("role", role, maxRoleLength)
	if err != nil {
		return Role{}, err
	}
	if p.HasRole(role) {
		return Role{}, fmt.Errorf("%w: principal %s already has role %s", apperrors.ErrConflict, p.PrincipalID, role)
	}
	r := Role{RoleID: uuid.NewString(), PrincipalID: p.PrincipalID, Name: role, CreatedAt: time.Now().UTC()}
	p.Roles = append(p.Roles, r)
	return r, nil
}

// RemoveRole revokes a role.
func (p *Principal) RemoveRole(role string) (Role, error) {
	role = strings.TrimSpace(role)
	for i, r := range p.Roles {
		if r.Name == role {
			p.Roles = append(p.Roles[:i], p.Roles[i+1:]...)
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("%w: principal %s does not have role %s", apperrors.ErrNotFound, p.PrincipalID, role)
}

// RoleNames returns the granted role names in grant order.
func (p *Principal) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		names = append(names, r.Name)
	}
	return names
}

// ValidateAttribute checks attribute field limits and returns the normalized domain, key and value.
func ValidateAttribute(domainName, key, value string) (string, string, string, error) {
	d, err := requireText("domain", NormalizeDomain(domainName), maxDomainLength)
	if err != nil {
		return "", "", "", err
	}
	k, err := requireText("key", key, maxKeyLength)
	if err != nil {
		return "", "", "", err
	}
	if len(value) > maxValueLength {
		return "", "", "", fmt.Errorf("%w: value must be at most %d characters", apperrors.ErrValidation, maxValueLength)
	}
	return d, k, value, nil
}

// SetAttribute inserts or overwrites the value stored under (domain, key).
func (p *Principal) SetAttribute(domainName, key, value string) (Attribute, error) {
	domainName, key, value, err := ValidateAttribute(domainName, key, value)
	if err != nil {
		return Attribute{}, err
	}
	now := time.Now().UTC()
	for i := range p.Attributes {
		a := &p.Attributes[i]
		if a.Domain == domainName && a.Key == key {
			a.Value = value
			a.LastUpdatedAt = now
			return *a, nil
		}
	}
	a := Attribute{
		AttributeID:   uuid.NewString(),
		PrincipalID:   p.PrincipalID,
		Domain:        domainName,
		Key:           key,
		Value:         value,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	p.Attributes = append(p.Attributes, a)
	return a, nil
}

// RemoveAttribute deletes the value stored under (domain, key).
func (p *Principal) RemoveAttribute(domainName, key string) (Attribute, error) {
	domainName, key = NormalizeDomain(domainName), strings.TrimSpace(key)
	for i, a := range p.Attributes {
		if a.Domain == domainName && a.Key == key {
			p.Attributes = append(p.Attributes[:i], p.Attributes[i+1:]...)
			return a, nil
		}
	}
	return Attribute{}, fmt.Errorf("%w: attribute %s/%s not found on principal %s",
		apperrors.ErrNotFound, domainName, key, p.PrincipalID)
}

// DomainAttributes returns the raw key/value pairs stored for one domain.
// The map is never nil.
func (p *Principal) DomainAttributes(domainName string) map[string]string {
	domainName = NormalizeDomain(domainName)
	raw := make(map[string]string)
	for _, a := range p.Attributes {
		if a.Domain == domainName {
			raw[a.Key] = a.Value
		}
	}
	return raw
}
