package services

import (
	"context"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
)

// StatisticsSvc answers aggregate questions about stored transactions
type StatisticsSvc interface {
	// MostSpentByAttribute ranks expense groups for the attribute, most negative first.
	MostSpentByAttribute(ctx context.Context, attribute domain.FilterAttribute, topN int, currency string) ([]domain.TopSpentBy, error)

	// BalanceByAttribute reports expenses, income and balance of transactions whose attribute equals value.
	BalanceByAttribute(ctx context.Context, attribute domain.FilterAttribute, value string, currency string) (*domain.BalanceByAttribute, error)
}
