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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `a.account_id, a.account_type, a.status, a.currency_code, a.created_at, a.last_updated_at`

func scanAccount(row pgx.Row, a *models.Account) error {
	return row.Scan(&a.AccountID, &a.AccountType, &a.Status, &a.CurrencyCode, &a.CreatedAt, &a.LastUpdatedAt)
}

func scanHolder(rows pgx.Rows, h *models.AccountHolder) error {
	return rows.Scan(&h.HolderRecordID, &h.AccountID, &h.HolderID, &h.HolderType, &h.CreatedAt)
}

// SaveAccount inserts a new account with its holders.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO accounts (account_id, account_type, status, currency_code, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, m.AccountID, m.AccountType, m.Status, m.CurrencyCode, m.CreatedAt, m.LastUpdatedAt)
		if err != nil {
			return mapPgError(err, "insert account "+m.AccountID)
		}
		for _, h := range account.Holders {
			if err := insertHolder(ctx, tx, h); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var m models.Account
	row := r.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE a.account_id = $1;`, accountID)
	if err := scanAccount(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	holders, err := r.holdersFor(ctx, []string{accountID})
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m, holders[accountID])
	return &acc, nil
}

func (r *PgxAccountRepository) ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN account_holders h ON h.account_id = a.account_id
		WHERE h.holder_id = $1
		ORDER BY a.created_at;
	`, holderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts of holder "+holderID, err)
	}
	accRows, err := collect(rows, func(rows pgx.Rows, a *models.Account) error { return scanAccount(rows, a) })
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts of holder "+holderID, err)
	}

	ids := make([]string, len(accRows))
	for i, a := range accRows {
		ids[i] = a.AccountID
	}
	holders, err := r.holdersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, len(accRows))
	for i, a := range accRows {
		accounts[i] = mapping.ToDomainAccount(a, holders[a.AccountID])
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET status = $1, last_updated_at = $2 WHERE account_id = $3;
	`, string(status), updatedAt, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *PgxAccountRepository) AddHolder(ctx context.Context, holder domain.AccountHolder) error {
	return insertHolder(ctx, r.Pool, holder)
}

func (r *PgxAccountRepository) RemoveHolder(ctx context.Context, accountID, holderID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM account_holders WHERE account_id = $1 AND holder_id = $2;`, accountID, holderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove holder from account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: holder %s is not linked to account %s", apperrors.ErrNotFound, holderID, accountID)
	}
	return nil
}

func insertHolder(ctx context.Context, db execer, holder domain.AccountHolder) error {
	h := mapping.ToModelAccountHolder(holder)
	_, err := db.Exec(ctx, `
		INSERT INTO account_holders (holder_record_id, account_id, holder_id, holder_type, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, h.HolderRecordID, h.AccountID, h.HolderID, h.HolderType, h.CreatedAt)
	return mapPgError(err, "link holder "+h.HolderID+" to account "+h.AccountID)
}

func (r *PgxAccountRepository) holdersFor(ctx context.Context, accountIDs []string) (map[string][]models.AccountHolder, error) {
	byAccount := make(map[string][]models.AccountHolder, len(accountIDs))
	if len(accountIDs) == 0 {
		return byAccount, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT holder_record_id, account_id, holder_id, holder_type, created_at
		FROM account_holders
		WHERE account_id = ANY($1)
		ORDER BY created_at;
	`, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account holders", err)
	}
	holders, err := collect(rows, scanHolder)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan account holders", err)
	}
	for _, h := range holders {
		byAccount[h.AccountID] = append(byAccount[h.AccountID], h)
	}
	return byAccount, nil
}
