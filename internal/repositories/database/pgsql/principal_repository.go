package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice/internal/models"
	"github.com/SscSPs/banking_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPrincipalRepository struct {
	BaseRepository
}

// newPgxPrincipalRepository creates a repository for principals and their identities, roles and attributes.
func newPgxPrincipalRepository(pool *pgxpool.Pool) portsrepo.PrincipalRepositoryFacade {
	return &PgxPrincipalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrincipalRepositoryFacade = (*PgxPrincipalRepository)(nil)

func (r *PgxPrincipalRepository) SavePrincipal(ctx context.Context, principal domain.Principal) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO principals (principal_id, created_at) VALUES ($1, $2);`,
			principal.PrincipalID, principal.CreatedAt)
		if err != nil {
			return mapPgError(err, "insert principal "+principal.PrincipalID)
		}
		for _, id := range principal.Identities {
			if err := insertIdentity(ctx, tx, id); err != nil {
				return err
			}
		}
		for _, role := range principal.Roles {
			if err := insertRole(ctx, tx, role); err != nil {
				return err
			}
		}
		for _, a := range principal.Attributes {
			if err := upsertAttribute(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxPrincipalRepository) FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error) {
	var m models.Principal
	err := r.Pool.QueryRow(ctx, `SELECT principal_id, created_at FROM principals WHERE principal_id = $1;`, principalID).
		Scan(&m.PrincipalID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: principal %s", apperrors.ErrNotFound, principalID)
		}
		return nil, apperrors.NewAppError(500, "failed to find principal "+principalID, err)
	}
	principals, err := r.assemble(ctx, []models.Principal{m})
	if err != nil {
		return nil, err
	}
	return &principals[0], nil
}

func (r *PgxPrincipalRepository) FindPrincipalByIdentity(ctx context.Context, provider, externalID string) (*domain.Principal, error) {
	var principalID string
	err := r.Pool.QueryRow(ctx, `
		SELECT principal_id FROM principal_identities WHERE provider = $1 AND external_id = $2;
	`, provider, externalID).Scan(&principalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no principal bound to %s/%s", apperrors.ErrNotFound, provider, externalID)
		}
		return nil, apperrors.NewAppError(500, "failed to look up identity", err)
	}
	return r.FindPrincipalByID(ctx, principalID)
}

func (r *PgxPrincipalRepository) ListPrincipals(ctx context.Context, limit int, offset int) ([]domain.Principal, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT principal_id, created_at FROM principals
		ORDER BY created_at, principal_id
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query principals", err)
	}
	principalRows, err := collect(rows, func(rows pgx.Rows, p *models.Principal) error {
		return rows.Scan(&p.PrincipalID, &p.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan principals", err)
	}
	return r.assemble(ctx, principalRows)
}

func (r *PgxPrincipalRepository) IdentityExists(ctx context.Context, provider, externalID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM principal_identities WHERE provider = $1 AND external_id = $2);
	`, provider, externalID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check identity", err)
	}
	return exists, nil
}

// DeletePrincipal removes the principal; identities, roles and attributes cascade.
func (r *PgxPrincipalRepository) DeletePrincipal(ctx context.Context, principalID string) error {
	return r.deleteOne(ctx, `DELETE FROM principals WHERE principal_id = $1;`, "principal "+principalID, principalID)
}

func (r *PgxPrincipalRepository) AddIdentity(ctx context.Context, identity domain.Identity) error {
	return insertIdentity(ctx, r.Pool, identity)
}

func (r *PgxPrincipalRepository) RemoveIdentity(ctx context.Context, principalID, identityID string) error {
	return r.deleteOne(ctx, `DELETE FROM principal_identities WHERE principal_id = $1 AND identity_id = $2;`,
		"identity "+identityID, principalID, identityID)
}

func (r *PgxPrincipalRepository) AddRole(ctx context.Context, role domain.Role) error {
	return insertRole(ctx, r.Pool, role)
}

func (r *PgxPrincipalRepository) RemoveRole(ctx context.Context, principalID, roleID string) error {
	return r.deleteOne(ctx, `DELETE FROM principal_roles WHERE principal_id = $1 AND role_id = $2;`,
		"role "+roleID, principalID, roleID)
}

func (r *PgxPrincipalRepository) UpsertAttribute(ctx context.Context, attribute domain.Attribute) error {
	return upsertAttribute(ctx, r.Pool, attribute)
}

func (r *PgxPrincipalRepository) RemoveAttribute(ctx context.Context, principalID, attributeID string) error {
	return r.deleteOne(ctx, `DELETE FROM principal_attributes WHERE principal_id = $1 AND attribute_id = $2;`,
		"attribute "+attributeID, principalID, attributeID)
}

func (r *PgxPrincipalRepository) deleteOne(ctx context.Context, query, what string, args ...any) error {
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete "+what, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}

func insertIdentity(ctx context.Context, db execer, identity domain.Identity) error {
	m := mapping.ToModelIdentity(identity)
	_, err := db.Exec(ctx, `
		INSERT INTO principal_identities (identity_id, principal_id, provider, external_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, m.IdentityID, m.PrincipalID, m.Provider, m.ExternalID, m.CreatedAt)
	return mapPgError(err, fmt.Sprintf("bind identity %s/%s", m.Provider, m.ExternalID))
}

func insertRole(ctx context.Context, db execer, role domain.Role) error {
	m := mapping.ToModelRole(role)
	_, err := db.Exec(ctx, `
		INSERT INTO principal_roles (role_id, principal_id, role_name, created_at)
		VALUES ($1, $2, $3, $4);
	`, m.RoleID, m.PrincipalID, m.RoleName, m.CreatedAt)
	return mapPgError(err, "grant role "+m.RoleName)
}

func upsertAttribute(ctx context.Context, db execer, attribute domain.Attribute) error {
	m := mapping.ToModelAttribute(attribute)
	_, err := db.Exec(ctx, `
		INSERT INTO principal_attributes (attribute_id, principal_id, domain, attr_key, attr_value, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (principal_id, domain, attr_key) DO UPDATE SET
			attr_value = EXCLUDED.attr_value,
			last_updated_at = EXCLUDED.last_updated_at;
	`, m.AttributeID, m.PrincipalID, m.Domain, m.AttrKey, m.AttrValue, m.CreatedAt, m.LastUpdatedAt)
	return mapPgError(err, fmt.Sprintf("set attribute %s/%s", m.Domain, m.AttrKey))
}

// assemble loads identities, roles and attributes for the given principal rows.
func (r *PgxPrincipalRepository) assemble(ctx context.Context, principalRows []models.Principal) ([]domain.Principal, error) {
	principals := make([]domain.Principal, 0, len(principalRows))
	if len(principalRows) == 0 {
		return principals, nil
	}
	ids := make([]string, len(principalRows))
	for i, p := range principalRows {
		ids[i] = p.PrincipalID
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT identity_id, principal_id, provider, external_id, created_at
		FROM principal_identities WHERE principal_id = ANY($1) ORDER BY created_at;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query identities", err)
	}
	identities, err := collect(rows, func(rows pgx.Rows, i *models.PrincipalIdentity) error {
		return rows.Scan(&i.IdentityID, &i.PrincipalID, &i.Provider, &i.ExternalID, &i.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan identities", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT role_id, principal_id, role_name, created_at
		FROM principal_roles WHERE principal_id = ANY($1) ORDER BY created_at;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles", err)
	}
	roles, err := collect(rows, func(rows pgx.Rows, role *models.PrincipalRole) error {
		return rows.Scan(&role.RoleID, &role.PrincipalID, &role.RoleName, &role.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan roles", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT attribute_id, principal_id, domain, attr_key, attr_value, created_at, last_updated_at
		FROM principal_attributes WHERE principal_id = ANY($1) ORDER BY created_at;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attributes", err)
	}
	attrs, err := collect(rows, func(rows pgx.Rows, a *models.PrincipalAttribute) error {
		return rows.Scan(&a.AttributeID, &a.PrincipalID, &a.Domain, &a.AttrKey, &a.AttrValue, &a.CreatedAt, &a.LastUpdatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan attributes", err)
	}

	identitiesBy := make(map[string][]models.PrincipalIdentity)
	for _, i := range identities {
		identitiesBy[i.PrincipalID] = append(identitiesBy[i.PrincipalID], i)
	}
	rolesBy := make(map[string][]models.PrincipalRole)
	for _, role := range roles {
		rolesBy[role.PrincipalID] = append(rolesBy[role.PrincipalID], role)
	}
	attrsBy := make(map[string][]models.PrincipalAttribute)
	for _, a := range attrs {
		attrsBy[a.PrincipalID] = append(attrsBy[a.PrincipalID], a)
	}
	for _, p := range principalRows {
		principals = append(principals, mapping.ToDomainPrincipal(p, identitiesBy[p.PrincipalID], rolesBy[p.PrincipalID], attrsBy[p.PrincipalID]))
	}
	return principals, nil
}
