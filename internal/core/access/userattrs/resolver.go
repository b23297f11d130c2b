// Package userattrs defines the access attributes owned by the "user" domain.
package userattrs

import (
	"fmt"

	"github.com/SscSPs/banking_backoffice/internal/core/access"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// Domain is the access-control namespace of this resolver.
const Domain = "user"

// Known attribute keys.
const (
	KeyUserID  = "user_id"
	KeyEmail   = "email"
	KeyAddress = "address"
)

// EmailPermissions controls what a principal may do with user emails.
type EmailPermissions struct {
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// AddressPermissions controls what a principal may do with user addresses.
type AddressPermissions struct {
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Attributes is the typed "user" domain view. The zero value is the most
// restrictive state: no linked user and every permission denied.
type Attributes struct {
	UserID  string             `json:"userId"`
	Email   EmailPermissions   `json:"email"`
	Address AddressPermissions `json:"address"`
}

// Resolver implements access.AttributeResolver for the "user" domain.
type Resolver struct{}

var _ access.AttributeResolver = Resolver{}

// NewResolver returns the "user" domain resolver.
func NewResolver() Resolver {
	return Resolver{}
}

func (Resolver) Domain() string {
	return Domain
}

func (Resolver) Resolve(raw map[string]string) any {
	return Attributes{
		UserID:  access.StringValue(raw, KeyUserID, ""),
		Email:   access.JSONValue(raw, KeyEmail, EmailPermissions{}),
		Address: access.JSONValue(raw, KeyAddress, AddressPermissions{}),
	}
}

func (Resolver) Validate(key, value string) error {
	switch key {
	case KeyUserID:
		return nil
	case KeyEmail:
		return access.ValidateJSON[EmailPermissions](key, value)
	case KeyAddress:
		return access.ValidateJSON[AddressPermissions](key, value)
	default:
		return fmt.Errorf("unknown attribute key '%s' in domain '%s'", key, Domain)
	}
}

// FromPrincipal extracts the "user" attributes of a resolved principal,
// falling back to the restrictive default.
func FromPrincipal(rp *domain.ResolvedPrincipal) Attributes {
	attrs, _ := access.Attributes[Attributes](rp, Domain)
	return attrs
}
