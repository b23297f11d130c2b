package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice/internal/models"
	"github.com/SscSPs/banking_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, given_name, family_name, date_of_birth, created_at, last_updated_at`

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(&u.UserID, &u.GivenName, &u.FamilyName, &u.DateOfBirth, &u.CreatedAt, &u.LastUpdatedAt)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, m.UserID, m.GivenName, m.FamilyName, m.DateOfBirth, m.CreatedAt, m.LastUpdatedAt)
		if err != nil {
			return mapPgError(err, "insert user "+m.UserID)
		}
		for _, e := range user.Emails {
			if err := insertEmail(ctx, tx, e); err != nil {
				return err
			}
		}
		for _, a := range user.Addresses {
			if err := insertAddress(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	row := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
	if err := scanUser(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, apperrors.NewAppError(500, "failed to find user by ID "+userID, err)
	}
	users, err := r.withChildren(ctx, []models.User{m})
	if err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, user_id
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	userRows, err := collect(rows, func(rows pgx.Rows, u *models.User) error { return scanUser(rows, u) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan user rows", err)
	}
	return r.withChildren(ctx, userRows)
}

func (r *PgxUserRepository) UpdateUserName(ctx context.Context, userID string, name domain.Name, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE users SET given_name = $1, family_name = $2, last_updated_at = $3 WHERE user_id = $4;
	`, name.Given, name.Family, updatedAt, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

// DeleteUser removes the user; emails and addresses cascade.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

func (r *PgxUserRepository) AddEmail(ctx context.Context, email domain.UserEmail) error {
	return insertEmail(ctx, r.Pool, email)
}

func (r *PgxUserRepository) RemoveEmail(ctx context.Context, userID, emailID string) error {
	return r.removeChild(ctx, `DELETE FROM user_emails WHERE user_id = $1 AND email_id = $2;`, userID, emailID, "email")
}

func (r *PgxUserRepository) AddAddress(ctx context.Context, address domain.UserAddress) error {
	return insertAddress(ctx, r.Pool, address)
}

func (r *PgxUserRepository) RemoveAddress(ctx context.Context, userID, addressID string) error {
	return r.removeChild(ctx, `DELETE FROM user_addresses WHERE user_id = $1 AND address_id = $2;`, userID, addressID, "address")
}

// removeChild deletes one owned row. A missing row means it was already removed.
func (r *PgxUserRepository) removeChild(ctx context.Context, query, userID, childID, kind string) error {
	cmdTag, err := r.Pool.Exec(ctx, query, userID, childID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove "+kind+" "+childID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s not found for user %s", apperrors.ErrGone, kind, childID, userID)
	}
	return nil
}

func insertEmail(ctx context.Context, db execer, email domain.UserEmail) error {
	m := mapping.ToModelUserEmail(email)
	_, err := db.Exec(ctx, `
		INSERT INTO user_emails (email_id, user_id, address, email_type, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, m.EmailID, m.UserID, m.Address, m.EmailType, m.CreatedAt)
	return mapPgError(err, "add email "+m.Address)
}

func insertAddress(ctx context.Context, db execer, address domain.UserAddress) error {
	m := mapping.ToModelUserAddress(address)
	_, err := db.Exec(ctx, `
		INSERT INTO user_addresses (address_id, user_id, street, city, postal_code, country, region, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.AddressID, m.UserID, m.Street, m.City, m.PostalCode, m.Country, m.Region, m.CreatedAt)
	return mapPgError(err, "add address "+m.AddressID)
}

// withChildren loads emails and addresses for the given user rows in two queries.
func (r *PgxUserRepository) withChildren(ctx context.Context, userRows []models.User) ([]domain.User, error) {
	users := make([]domain.User, 0, len(userRows))
	if len(userRows) == 0 {
		return users, nil
	}
	ids := make([]string, len(userRows))
	for i, u := range userRows {
		ids[i] = u.UserID
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT email_id, user_id, address, email_type, created_at
		FROM user_emails WHERE user_id = ANY($1) ORDER BY created_at;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user emails", err)
	}
	emails, err := collect(rows, func(rows pgx.Rows, e *models.UserEmail) error {
		return rows.Scan(&e.EmailID, &e.UserID, &e.Address, &e.EmailType, &e.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan user emails", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT address_id, user_id, street, city, postal_code, country, region, created_at
		FROM user_addresses WHERE user_id = ANY($1) ORDER BY created_at;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user addresses", err)
	}
	addresses, err := collect(rows, func(rows pgx.Rows, a *models.UserAddress) error {
		return rows.Scan(&a.AddressID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.Region, &a.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan user addresses", err)
	}

	emailsByUser := make(map[string][]models.UserEmail)
	for _, e := range emails {
		emailsByUser[e.UserID] = append(emailsByUser[e.UserID], e)
	}
	addressesByUser := make(map[string][]models.UserAddress)
	for _, a := range addresses {
		addressesByUser[a.UserID] = append(addressesByUser[a.UserID], a)
	}
	for _, u := range userRows {
		users = append(users, mapping.ToDomainUser(u, emailsByUser[u.UserID], addressesByUser[u.UserID]))
	}
	return users, nil
}
