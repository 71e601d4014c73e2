package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

// transactionService serves read access to imported transactions
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo portsrepo.TransactionReader) portssvc.TransactionReaderSvc {
	return &transactionService{
		transactionRepo: repo,
	}
}

var _ portssvc.TransactionReaderSvc = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", id.String()))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions clamps limit to [1, 100], defaulting to 20.
func (s *transactionService) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	switch {
	case limit <= 0:
		limit = defaultTransactionPageSize
	case limit > maxTransactionPageSize:
		limit = maxTransactionPageSize
	}

	txns, next, err := s.transactionRepo.ListTransactions(ctx, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, next, nil
}
