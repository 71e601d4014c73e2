package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_analyzer/internal/models"
	"github.com/SscSPs/transaction_analyzer/internal/utils/mapping"
	"github.com/SscSPs/transaction_analyzer/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, iban, transaction_date, currency, category, amount)
	VALUES ($1, $2, $3, $4, $5, $6);
`

const selectTransactionColumns = `
	SELECT transaction_id, iban, transaction_date, currency, category, amount
	FROM transactions
`

// batchSender is satisfied by both *pgxpool.Pool and pgx.Tx.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for imported transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransactions inserts the batch in a single round trip. Postgres runs a pipelined batch as one implicit transaction.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return saveTransactionBatch(ctx, r.Pool, transactions)
}

// WithinTransaction hands fn a writer bound to one database transaction.
func (r *PgxTransactionRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, writer portsrepo.TransactionWriter) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxTxTransactionWriter{tx: tx})
	})
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := selectTransactionColumns + ` WHERE transaction_id = $1;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&m.TransactionID,
		&m.IBAN,
		&m.TransactionDate,
		&m.Currency,
		&m.Category,
		&m.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+id.String(), err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions returns transactions newest first, keyed on (transaction_date, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1
	orderByClause := `ORDER BY transaction_date DESC, transaction_id DESC`

	var args []interface{}
	query := selectTransactionColumns
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeDateIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, decodeErr))
		}
		parsedID, parseErr := uuid.Parse(lastID)
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, parseErr))
		}
		query += ` WHERE (transaction_date, transaction_id) < ($1, $2)`
		args = append(args, lastDate, parsedID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.IBAN,
			&m.TransactionDate,
			&m.Currency,
			&m.Category,
			&m.Amount,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeDateIDToken(last.TransactionDate, last.TransactionID.String())
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// pgxTxTransactionWriter writes through an open transaction.
type pgxTxTransactionWriter struct {
	tx pgx.Tx
}

func (w *pgxTxTransactionWriter) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return saveTransactionBatch(ctx, w.tx, transactions)
}

func saveTransactionBatch(ctx context.Context, sender batchSender, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range mapping.ToModelTransactionSlice(transactions) {
		batch.Queue(insertTransactionQuery,
			m.TransactionID,
			m.IBAN,
			m.TransactionDate,
			m.Currency,
			m.Category,
			m.Amount,
		)
	}

	br := sender.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction batch", err)
	}
	return nil
}
