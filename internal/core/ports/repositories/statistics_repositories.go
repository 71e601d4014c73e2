package repositories

import (
	"context"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
)

// StatisticsRepository computes aggregates over stored transactions inside the storage engine.
type StatisticsRepository interface {
	// TopSpentByCategory sums expenses (amount < 0) in currency per category, ascending by sum, limited to topN.
	TopSpentByCategory(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error)

	// TopSpentByYearMonth sums expenses in currency per "{year}-{month}" of the transaction date, ascending by sum, limited to topN.
	TopSpentByYearMonth(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error)

	// BalanceByIBAN splits the movements of an already normalised IBAN in currency into expenses and income.
	BalanceByIBAN(ctx context.Context, iban string, currency string) (*domain.BalanceByAttribute, error)
}
