package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
)

// statisticsService implements the StatisticsSvc interface
type statisticsService struct {
	BaseService
	statisticsRepo portsrepo.StatisticsRepository
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(repo portsrepo.StatisticsRepository) portssvc.StatisticsSvc {
	return &statisticsService{
		statisticsRepo: repo,
	}
}

var _ portssvc.StatisticsSvc = (*statisticsService)(nil)

// MostSpentByAttribute ranks expense groups for the attribute, most negative sum first.
func (s *statisticsService) MostSpentByAttribute(ctx context.Context, attribute domain.FilterAttribute, topN int, currency string) ([]domain.TopSpentBy, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: result size must be positive, got %d", apperrors.ErrValidation, topN)
	}

	var (
		result []domain.TopSpentBy
		err    error
	)
	switch attribute {
	case domain.FilterByCategory:
		result, err = s.statisticsRepo.TopSpentByCategory(ctx, topN, currency)
	case domain.FilterByYearMonth:
		result, err = s.statisticsRepo.TopSpentByYearMonth(ctx, topN, currency)
	case domain.FilterByIBAN, domain.FilterByCurrency, domain.FilterByDate:
		return nil, notImplemented("most spent", attribute)
	default:
		return nil, fmt.Errorf("%w: unknown filter attribute %q", apperrors.ErrValidation, attribute)
	}

	if err != nil {
		s.LogError(ctx, err, "Failed to compute most spent statistics",
			slog.String("filter_by", string(attribute)),
			slog.String("currency", currency))
		return nil, fmt.Errorf("failed to compute most spent by %s: %w", attribute, err)
	}

	s.LogInfo(ctx, "Most spent statistics computed",
		slog.String("filter_by", string(attribute)),
		slog.String("currency", currency),
		slog.Int("result_size", topN),
		slog.Int("row_count", len(result)))
	return result, nil
}

// BalanceByAttribute reports expenses, income and balance of the transactions whose attribute equals value.
func (s *statisticsService) BalanceByAttribute(ctx context.Context, attribute domain.FilterAttribute, value string, currency string) (*domain.BalanceByAttribute, error) {
	var (
		result *domain.BalanceByAttribute
		err    error
	)
	switch attribute {
	case domain.FilterByIBAN:
		value = normalizeBalanceIBAN(value)
		result, err = s.statisticsRepo.BalanceByIBAN(ctx, value, currency)
	case domain.FilterByCategory, domain.FilterByYearMonth, domain.FilterByCurrency, domain.FilterByDate:
		return nil, notImplemented("balance", attribute)
	default:
		return nil, fmt.Errorf("%w: unknown filter attribute %q", apperrors.ErrValidation, attribute)
	}

	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance statistics",
			slog.String("filter_by", string(attribute)),
			slog.String("currency", currency))
		return nil, fmt.Errorf("failed to compute balance by %s: %w", attribute, err)
	}
	if result == nil {
		result = &domain.BalanceByAttribute{}
	}

	s.LogInfo(ctx, "Balance statistics computed",
		slog.String("filter_by", string(attribute)),
		slog.String("currency", currency))
	return result, nil
}

// normalizeBalanceIBAN matches the form IBANs are stored in: no whitespace, upper case.
func normalizeBalanceIBAN(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

func notImplemented(operation string, attribute domain.FilterAttribute) error {
	return fmt.Errorf("%w: %s by %s", apperrors.ErrNotImplemented, operation, attribute)
}
