package pgsql

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice/internal/models"
	"github.com/SscSPs/banking_backoffice/internal/utils/mapping"
	"github.com/SscSPs/banking_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions and their journal entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_type, status, reference_number, description, amount, currency_code, created_at, last_updated_at`

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func scanTransaction(row pgx.Row, t *models.Transaction) error {
	return row.Scan(
		&t.TransactionID,
		&t.TransactionType,
		&t.Status,
		&t.ReferenceNumber,
		&t.Description,
		&t.Amount,
		&t.CurrencyCode,
		&t.CreatedAt,
		&t.LastUpdatedAt,
	)
}

func scanJournalEntry(rows pgx.Rows, e *models.JournalEntry) error {
	return rows.Scan(&e.EntryID, &e.TransactionID, &e.ParticipantID, &e.EntryType, &e.CreatedAt)
}

// SaveTransaction inserts the transaction and its entries in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO transactions (`+transactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, m.TransactionID, m.TransactionType, m.Status, m.ReferenceNumber, m.Description, m.Amount, m.CurrencyCode, m.CreatedAt, m.LastUpdatedAt)
		if err != nil {
			return mapPgError(err, "insert transaction "+m.TransactionID)
		}

		batch := &pgx.Batch{}
		for _, e := range txn.Entries {
			me := mapping.ToModelJournalEntry(e)
			batch.Queue(`
				INSERT INTO journal_entries (entry_id, transaction_id, participant_id, entry_type, created_at)
				VALUES ($1, $2, $3, $4, $5);
			`, me.EntryID, me.TransactionID, me.ParticipantID, me.EntryType, me.CreatedAt)
		}
		// Close surfaces the first failing insert of the batch.
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapPgError(err, "insert journal entries for "+m.TransactionID)
		}
		return nil
	})
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var m models.Transaction
	row := r.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err := scanTransaction(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	entries, err := r.entriesFor(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m, entries[transactionID])
	return &txn, nil
}

// ListTransactionsByParticipant pages through the transactions touching participantID,
// ordered by created_at then transaction_id, both descending.
func (r *PgxTransactionRepository) ListTransactionsByParticipant(ctx context.Context, participantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE EXISTS (
			SELECT 1 FROM journal_entries je
			WHERE je.transaction_id = t.transaction_id AND je.participant_id = $1
		)`
	args := []any{participantID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` AND (t.created_at, t.transaction_id) < ($2, $3)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for participant "+participantID, err)
	}
	txnRows, err := collect(rows, func(rows pgx.Rows, t *models.Transaction) error { return scanTransaction(rows, t) })
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transactions for participant "+participantID, err)
	}

	var next *string
	if len(txnRows) > limit {
		txnRows = txnRows[:limit]
		last := txnRows[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		next = &token
	}

	ids := make([]string, len(txnRows))
	for i, t := range txnRows {
		ids[i] = t.TransactionID
	}
	entries, err := r.entriesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	txns := make([]domain.Transaction, len(txnRows))
	for i, t := range txnRows {
		txns[i] = mapping.ToDomainTransaction(t, entries[t.TransactionID])
	}
	return txns, next, nil
}

// UpdateTransactionStatus only applies when the stored status still equals from.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET status = $1, last_updated_at = $2
		WHERE transaction_id = $3 AND status = $4;
	`, string(to), updatedAt, transactionID, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.Pool.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read status of transaction "+transactionID, err)
	}
	return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrInvalidOperation, transactionID, current, from)
}

// GetBalance sums the participant's entries in numeric so that overflow is detected
// instead of wrapping.
func (r *PgxTransactionRepository) GetBalance(ctx context.Context, participantID string) (int64, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN je.entry_type = 'DEBIT' THEN t.amount::numeric ELSE -t.amount::numeric END), 0)
		FROM journal_entries je
		JOIN transactions t ON t.transaction_id = je.transaction_id
		WHERE je.participant_id = $1;
	`, participantID).Scan(&sum)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute balance of "+participantID, err)
	}
	if sum.LessThan(minInt64) || sum.GreaterThan(maxInt64) {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("balance of %s cannot be represented", participantID), domain.ErrAmountOverflow)
	}
	return sum.IntPart(), nil
}

// entriesFor loads the journal entries of the given transactions keyed by transaction id.
func (r *PgxTransactionRepository) entriesFor(ctx context.Context, transactionIDs []string) (map[string][]models.JournalEntry, error) {
	byTxn := make(map[string][]models.JournalEntry, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return byTxn, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id, transaction_id, participant_id, entry_type, created_at
		FROM journal_entries
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, created_at, entry_type;
	`, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	entries, err := collect(rows, scanJournalEntry)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal entries", err)
	}
	for _, e := range entries {
		byTxn[e.TransactionID] = append(byTxn[e.TransactionID], e)
	}
	return byTxn, nil
}
