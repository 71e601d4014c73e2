package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// statisticsRepository implements the StatisticsRepository interface
type statisticsRepository struct {
	BaseRepository
}

func newStatisticsRepository(db *pgxpool.Pool) portsrepo.StatisticsRepository {
	return &statisticsRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// TopSpentByCategory groups uncategorised expenses under the empty key.
func (r *statisticsRepository) TopSpentByCategory(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	query := `
		SELECT
			COALESCE(category, '') AS category_key,
			SUM(amount) AS total_spent
		FROM transactions
		WHERE amount < 0
			AND currency = $1
		GROUP BY category_key
		ORDER BY total_spent ASC, category_key ASC
		LIMIT $2
	`

	rows, err := r.Pool.Query(ctx, query, currency, topN)
	if err != nil {
		return nil, fmt.Errorf("error querying top spent by category: %w", err)
	}
	defer rows.Close()

	result := []domain.TopSpentBy{}
	for rows.Next() {
		var row domain.TopSpentBy
		if err := rows.Scan(&row.Attribute, &row.TotalSpent); err != nil {
			return nil, fmt.Errorf("error scanning top spent by category row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top spent by category rows: %w", err)
	}

	return result, nil
}

// TopSpentByYearMonth keys each group as "{year}-{month}" without zero padding.
func (r *statisticsRepository) TopSpentByYearMonth(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM transaction_date)::int AS spent_year,
			EXTRACT(MONTH FROM transaction_date)::int AS spent_month,
			SUM(amount) AS total_spent
		FROM transactions
		WHERE amount < 0
			AND currency = $1
		GROUP BY spent_year, spent_month
		ORDER BY total_spent ASC, spent_year ASC, spent_month ASC
		LIMIT $2
	`

	rows, err := r.Pool.Query(ctx, query, currency, topN)
	if err != nil {
		return nil, fmt.Errorf("error querying top spent by year-month: %w", err)
	}
	defer rows.Close()

	result := []domain.TopSpentBy{}
	for rows.Next() {
		var year, month int
		var total decimal.Decimal
		if err := rows.Scan(&year, &month, &total); err != nil {
			return nil, fmt.Errorf("error scanning top spent by year-month row: %w", err)
		}
		result = append(result, domain.TopSpentBy{
			Attribute:  domain.YearMonthKey(year, month),
			TotalSpent: total,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top spent by year-month rows: %w", err)
	}

	return result, nil
}

// BalanceByIBAN returns zero sums when the IBAN has no movements in currency.
func (r *statisticsRepository) BalanceByIBAN(ctx context.Context, iban string, currency string) (*domain.BalanceByAttribute, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(CASE WHEN amount >= 0 THEN amount ELSE 0 END), 0) AS income
		FROM transactions
		WHERE iban = $1
			AND currency = $2
	`

	var balance domain.BalanceByAttribute
	if err := r.Pool.QueryRow(ctx, query, iban, currency).Scan(&balance.Expenses, &balance.Income); err != nil {
		return nil, fmt.Errorf("error querying balance by iban: %w", err)
	}

	return &balance, nil
}
