package mapping

import (
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/models"
)

// ToModelIdentity converts a domain Identity to its row.
func ToModelIdentity(d domain.Identity) models.PrincipalIdentity {
	return models.PrincipalIdentity{
		IdentityID:  d.IdentityID,
		PrincipalID: d.PrincipalID,
		Provider:    d.Provider,
		ExternalID:  d.ExternalID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToModelRole converts a domain Role to its row.
func ToModelRole(d domain.Role) models.PrincipalRole {
	return models.PrincipalRole{
		RoleID:      d.RoleID,
		PrincipalID: d.PrincipalID,
		RoleName:    d.Name,
		CreatedAt:   d.CreatedAt,
	}
}

// ToModelAttribute converts a domain Attribute to its row.
func ToModelAttribute(d domain.Attribute) models.PrincipalAttribute {
	return models.PrincipalAttribute{
		AttributeID: d.AttributeID,
		PrincipalID: d.PrincipalID,
		Domain:      d.Domain,
		AttrKey:     d.Key,
		AttrValue:   d.Value,
		AuditFields: ToModelAuditFields(d.CreatedAt, d.LastUpdatedAt),
	}
}

// ToDomainPrincipal assembles a principal from its rows.
func ToDomainPrincipal(m models.Principal, identities []models.PrincipalIdentity, roles []models.PrincipalRole, attrs []models.PrincipalAttribute) domain.Principal {
	d := domain.Principal{
		PrincipalID: m.PrincipalID,
		Identities:  make([]domain.Identity, len(identities)),
		Roles:       make([]domain.Role, len(roles)),
		Attributes:  make([]domain.Attribute, len(attrs)),
		CreatedAt:   m.CreatedAt,
	}
	for i, id := range identities {
		d.Identities[i] = domain.Identity{
			IdentityID:  id.IdentityID,
			PrincipalID: id.PrincipalID,
			Provider:    id.Provider,
			ExternalID:  id.ExternalID,
			CreatedAt:   id.CreatedAt,
		}
	}
	for i, r := range roles {
		d.Roles[i] = domain.Role{RoleID: r.RoleID, PrincipalID: r.PrincipalID, Name: r.RoleName, CreatedAt: r.CreatedAt}
	}
	for i, a := range attrs {
		d.Attributes[i] = domain.Attribute{
			AttributeID:   a.AttributeID,
			PrincipalID:   a.PrincipalID,
			Domain:        a.Domain,
			Key:           a.AttrKey,
			Value:         a.AttrValue,
			CreatedAt:     a.CreatedAt,
			LastUpdatedAt: a.LastUpdatedAt,
		}
	}
	return d
}
