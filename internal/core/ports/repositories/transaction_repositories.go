package repositories

import (
	"context"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/google/uuid"
)

// TransactionReader defines read operations for imported transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions ordered by date (newest first) using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for imported transactions
type TransactionWriter interface {
	// SaveTransactions persists a batch of transactions in one bulk write.
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
