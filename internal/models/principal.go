package models

import "time"

// Principal is a row of the principals table.
type Principal struct {
	PrincipalID string    `db:"principal_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// PrincipalIdentity is a row of principal_identities, globally unique on (provider, external_id).
type PrincipalIdentity struct {
	IdentityID  string    `db:"identity_id"`
	PrincipalID string    `db:"principal_id"`
	Provider    string    `db:"provider"`
	ExternalID  string    `db:"external_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// PrincipalRole is a row of principal_roles, unique on (principal_id, role_name).
type PrincipalRole struct {
	RoleID      string    `db:"role_id"`
	PrincipalID string    `db:"principal_id"`
	RoleName    string    `db:"role_name"`
	CreatedAt   time.Time `db:"created_at"`
}

// PrincipalAttribute is a row of principal_attributes, unique on (principal_id, domain, attr_key).
type PrincipalAttribute struct {
	AttributeID string `db:"attribute_id"`
	PrincipalID string `db:"principal_id"`
	Domain      string `db:"domain"`
	AttrKey     string `db:"attr_key"`
	AttrValue   string `db:"attr_value"`
	AuditFields
}
