package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Every spending query selects (category_key, spent_year, spent_month, amount) so one scanner serves them all.
// The *Sums queries aggregate in SQLite; the *Amounts queries list single rows for exact summing in Go.
const (
	categorySumsQuery = `
		SELECT COALESCE(category, '') AS category_key, 0, 0, SUM(amount_minor) AS total_spent
		FROM transactions
		WHERE amount_minor < 0
			AND currency = ?
		GROUP BY category_key
		ORDER BY total_spent ASC, category_key ASC
		LIMIT ?
	`
	categoryAmountsQuery = `
		SELECT COALESCE(category, ''), 0, 0, amount_minor
		FROM transactions
		WHERE amount_minor < 0
			AND currency = ?
	`
	yearMonthSumsQuery = `
		SELECT
			'',
			CAST(strftime('%Y', transaction_date) AS INTEGER) AS spent_year,
			CAST(strftime('%m', transaction_date) AS INTEGER) AS spent_month,
			SUM(amount_minor) AS total_spent
		FROM transactions
		WHERE amount_minor < 0
			AND currency = ?
		GROUP BY spent_year, spent_month
		ORDER BY total_spent ASC, spent_year ASC, spent_month ASC
		LIMIT ?
	`
	yearMonthAmountsQuery = `
		SELECT
			'',
			CAST(strftime('%Y', transaction_date) AS INTEGER),
			CAST(strftime('%m', transaction_date) AS INTEGER),
			amount_minor
		FROM transactions
		WHERE amount_minor < 0
			AND currency = ?
	`
	balanceSumsQuery = `
		SELECT
			COALESCE(SUM(CASE WHEN amount_minor < 0 THEN amount_minor ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(CASE WHEN amount_minor >= 0 THEN amount_minor ELSE 0 END), 0) AS income
		FROM transactions
		WHERE iban = ?
			AND currency = ?
	`
	balanceAmountsQuery = `
		SELECT amount_minor
		FROM transactions
		WHERE iban = ?
			AND currency = ?
	`
)

// statisticsRepository implements the StatisticsRepository interface
type statisticsRepository struct {
	BaseRepository
}

func newStatisticsRepository(db *sql.DB) portsrepo.StatisticsRepository {
	return &statisticsRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// sumOverflowed reports the error SQLite raises when an integer SUM leaves the int64 range.
func sumOverflowed(err error) bool {
	return err != nil && strings.Contains(err.Error(), "integer overflow")
}

type spentGroup struct {
	category string
	year     int
	month    int
	total    decimal.Decimal
}

func compareSpentGroups(a, b spentGroup) int {
	if c := a.total.Cmp(b.total); c != 0 {
		return c
	}
	if c := strings.Compare(a.category, b.category); c != 0 {
		return c
	}
	if a.year != b.year {
		return a.year - b.year
	}
	return a.month - b.month
}

// TopSpentByCategory groups uncategorised expenses under the empty key.
func (r *statisticsRepository) TopSpentByCategory(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	groups, err := r.topSpent(ctx, categorySumsQuery, categoryAmountsQuery, topN, currency)
	if err != nil {
		return nil, fmt.Errorf("error querying top spent by category: %w", err)
	}

	result := make([]domain.TopSpentBy, 0, len(groups))
	for _, g := range groups {
		result = append(result, domain.TopSpentBy{Attribute: g.category, TotalSpent: g.total})
	}
	return result, nil
}

// TopSpentByYearMonth keys each group as "{year}-{month}" without zero padding.
func (r *statisticsRepository) TopSpentByYearMonth(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	groups, err := r.topSpent(ctx, yearMonthSumsQuery, yearMonthAmountsQuery, topN, currency)
	if err != nil {
		return nil, fmt.Errorf("error querying top spent by year-month: %w", err)
	}

	result := make([]domain.TopSpentBy, 0, len(groups))
	for _, g := range groups {
		result = append(result, domain.TopSpentBy{
			Attribute:  domain.YearMonthKey(g.year, g.month),
			TotalSpent: g.total,
		})
	}
	return result, nil
}

// topSpent aggregates in SQLite and falls back to summing single rows when a total overflows int64.
func (r *statisticsRepository) topSpent(ctx context.Context, sumsQuery, amountsQuery string, topN int, currency string) ([]spentGroup, error) {
	groups, err := r.scanSpentGroups(ctx, sumsQuery, currency, topN)
	if !sumOverflowed(err) {
		return groups, err
	}

	rows, err := r.scanSpentGroups(ctx, amountsQuery, currency)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		category    string
		year, month int
	}
	totals := make(map[groupKey]spentGroup)
	for _, row := range rows {
		key := groupKey{category: row.category, year: row.year, month: row.month}
		if g, ok := totals[key]; ok {
			row.total = g.total.Add(row.total)
		}
		totals[key] = row
	}

	groups = make([]spentGroup, 0, len(totals))
	for _, g := range totals {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, compareSpentGroups)
	if len(groups) > topN {
		groups = groups[:topN]
	}
	return groups, nil
}

func (r *statisticsRepository) scanSpentGroups(ctx context.Context, query string, args ...any) ([]spentGroup, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []spentGroup
	for rows.Next() {
		var g spentGroup
		var minor int64
		if err := rows.Scan(&g.category, &g.year, &g.month, &minor); err != nil {
			return nil, err
		}
		g.total = fromMinorUnits(minor)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// BalanceByIBAN returns zero sums when the IBAN has no movements in currency.
func (r *statisticsRepository) BalanceByIBAN(ctx context.Context, iban string, currency string) (*domain.BalanceByAttribute, error) {
	var expenses, income int64
	err := r.DB.QueryRowContext(ctx, balanceSumsQuery, iban, currency).Scan(&expenses, &income)
	if err == nil {
		return &domain.BalanceByAttribute{
			Expenses: fromMinorUnits(expenses),
			Income:   fromMinorUnits(income),
		}, nil
	}
	if !sumOverflowed(err) {
		return nil, fmt.Errorf("error querying balance by iban: %w", err)
	}

	balance, err := r.addUpBalance(ctx, iban, currency)
	if err != nil {
		return nil, fmt.Errorf("error querying balance by iban: %w", err)
	}
	return balance, nil
}

func (r *statisticsRepository) addUpBalance(ctx context.Context, iban string, currency string) (*domain.BalanceByAttribute, error) {
	rows, err := r.DB.QueryContext(ctx, balanceAmountsQuery, iban, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balance := &domain.BalanceByAttribute{}
	for rows.Next() {
		var minor int64
		if err := rows.Scan(&minor); err != nil {
			return nil, err
		}
		if minor < 0 {
			balance.Expenses = balance.Expenses.Add(fromMinorUnits(minor))
		} else {
			balance.Income = balance.Income.Add(fromMinorUnits(minor))
		}
	}
	return balance, rows.Err()
}
