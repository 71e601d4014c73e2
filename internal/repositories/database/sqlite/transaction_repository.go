package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_analyzer/internal/models"
	"github.com/SscSPs/transaction_analyzer/internal/utils/mapping"
	"github.com/SscSPs/transaction_analyzer/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxRowsPerInsert keeps each multi-row INSERT well below SQLite's bound-variable limit.
const maxRowsPerInsert = 500

const selectTransactionColumns = `
	SELECT transaction_id, iban, transaction_date, currency, category, amount_minor
	FROM transactions
`

type SQLiteTransactionRepository struct {
	BaseRepository
}

func newSQLiteTransactionRepository(db *sql.DB) portsrepo.TransactionRepositoryWithTx {
	return &SQLiteTransactionRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*SQLiteTransactionRepository)(nil)

// SaveTransactions writes the batch inside its own transaction so a batch is stored whole or not at all.
func (r *SQLiteTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return insertTransactions(ctx, tx, transactions)
	})
}

// WithinTransaction hands fn a writer bound to one database transaction.
func (r *SQLiteTransactionRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, writer portsrepo.TransactionWriter) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &sqliteTxTransactionWriter{tx: tx})
	})
}

func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row := r.DB.QueryRowContext(ctx, selectTransactionColumns+` WHERE transaction_id = ?;`, id.String())

	m, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+id.String(), err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions returns transactions newest first, keyed on (transaction_date, transaction_id).
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var args []any
	query := selectTransactionColumns
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeDateIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, decodeErr))
		}
		query += ` WHERE (transaction_date, transaction_id) < (?, ?)`
		args = append(args, lastDate.Format(domain.DateLayout), lastID)
	}
	query += ` ORDER BY transaction_date DESC, transaction_id DESC LIMIT ?;`
	args = append(args, fetchLimit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
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

type sqliteTxTransactionWriter struct {
	tx *sql.Tx
}

func (w *sqliteTxTransactionWriter) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return insertTransactions(ctx, w.tx, transactions)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	var date string
	var category sql.NullString
	var amountMinor int64

	if err := row.Scan(&m.TransactionID, &m.IBAN, &date, &m.Currency, &category, &amountMinor); err != nil {
		return models.Transaction{}, err
	}

	parsedDate, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return models.Transaction{}, err
	}
	m.TransactionDate = parsedDate
	if category.Valid {
		m.Category = &category.String
	}
	m.Amount = fromMinorUnits(amountMinor)
	return m, nil
}

func insertTransactions(ctx context.Context, db execer, transactions []domain.Transaction) error {
	rows := mapping.ToModelTransactionSlice(transactions)
	for start := 0; start < len(rows); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(rows))
		chunk := rows[start:end]

		var sb strings.Builder
		sb.WriteString(`INSERT INTO transactions (transaction_id, iban, transaction_date, currency, category, amount_minor) VALUES `)
		args := make([]any, 0, len(chunk)*6)
		for i, m := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?)")
			args = append(args,
				m.TransactionID.String(),
				m.IBAN,
				m.TransactionDate.Format(domain.DateLayout),
				m.Currency,
				m.Category,
				toMinorUnits(m.Amount),
			)
		}

		if _, err := db.ExecContext(ctx, sb.String(), args...); err != nil {
			return apperrors.NewAppError(500, "failed to insert transaction batch", err)
		}
	}
	return nil
}

// toMinorUnits expects amounts already validated to at most two fraction digits.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

func fromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
