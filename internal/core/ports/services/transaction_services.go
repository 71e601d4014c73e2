package services

import (
	"context"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/google/uuid"
)

// TransactionReaderSvc defines read operations for imported transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// ListTransactions returns one page of transactions and the token of the next page, if any.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
