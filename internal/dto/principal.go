package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// IdentityRequest names an external identity (provider + subject).
type IdentityRequest struct {
	Provider   string `json:"provider" binding:"required,max=200"`
	ExternalID string `json:"externalID" binding:"required,max=200"`
}

// RoleRequest grants a role.
type RoleRequest struct {
	Role string `json:"role" binding:"required,max=100"`
}

// SetAttributeRequest stores an attribute. Value may be a JSON string or any JSON
// value; non-string values are stored as their JSON text.
type SetAttributeRequest struct {
	Domain string          `json:"domain" binding:"required,max=100"`
	Key    string          `json:"key" binding:"required,max=100"`
	Value  json.RawMessage `json:"value" binding:"required" swaggertype:"object"`
}

// RawValue returns the attribute value as it is stored.
func (r SetAttributeRequest) RawValue() string {
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(r.Value))
}

// ListPrincipalsParams defines query parameters for listing principals.
type ListPrincipalsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// IdentityResponse defines the data returned for a bound identity.
type IdentityResponse struct {
	Provider   string    `json:"provider"`
	ExternalID string    `json:"externalID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AttributeResponse defines the data returned for a stored attribute.
type AttributeResponse struct {
	Domain string `json:"domain"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// PrincipalResponse defines the data returned for a principal.
type PrincipalResponse struct {
	PrincipalID string              `json:"principalID"`
	Identities  []IdentityResponse  `json:"identities"`
	Roles       []string            `json:"roles"`
	Attributes  []AttributeResponse `json:"attributes"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ListPrincipalsResponse wraps a list of principals.
type ListPrincipalsResponse struct {
	Principals []PrincipalResponse `json:"principals"`
}

// ToPrincipalResponse converts a domain.Principal to its DTO.
func ToPrincipalResponse(p *domain.Principal) PrincipalResponse {
	res := PrincipalResponse{
		PrincipalID: p.PrincipalID,
		Identities:  make([]IdentityResponse, len(p.Identities)),
		Roles:       p.RoleNames(),
		Attributes:  make([]AttributeResponse, len(p.Attributes)),
		CreatedAt:   p.CreatedAt,
	}
	for i, id := range p.Identities {
		res.Identities[i] = IdentityResponse{Provider: id.Provider, ExternalID: id.ExternalID, CreatedAt: id.CreatedAt}
	}
	for i, a := range p.Attributes {
		res.Attributes[i] = AttributeResponse{Domain: a.Domain, Key: a.Key, Value: a.Value}
	}
	return res
}

// ToListPrincipalsResponse converts a slice of principals.
func ToListPrincipalsResponse(principals []domain.Principal) ListPrincipalsResponse {
	res := make([]PrincipalResponse, len(principals))
	for i := range principals {
		res[i] = ToPrincipalResponse(&principals[i])
	}
	return ListPrincipalsResponse{Principals: res}
}
