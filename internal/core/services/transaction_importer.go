package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
)

// DefaultImportBatchSize is the number of valid rows written per bulk save.
const DefaultImportBatchSize = 100

// RecordValidator checks a parsed transaction and lists every broken rule.
type RecordValidator interface {
	Validate(txn domain.Transaction) []apperrors.Violation
}

// transactionImporter implements portssvc.TransactionImporterSvc
type transactionImporter struct {
	BaseService
	repo      portsrepo.TransactionRepositoryWithTx
	validator RecordValidator
	batchSize int
	strategy  domain.AtomicityStrategy
}

// TransactionImporterOption is a functional option for configuring the importer
type TransactionImporterOption func(*transactionImporter)

// WithImportBatchSize overrides the flush threshold. Non-positive sizes are ignored.
func WithImportBatchSize(size int) TransactionImporterOption {
	return func(s *transactionImporter) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithAtomicityStrategy selects how much of a failed import survives.
func WithAtomicityStrategy(strategy domain.AtomicityStrategy) TransactionImporterOption {
	return func(s *transactionImporter) {
		if strategy != "" {
			s.strategy = strategy
		}
	}
}

// NewTransactionImporter creates the CSV import pipeline.
func NewTransactionImporter(repo portsrepo.TransactionRepositoryWithTx, validator RecordValidator, options ...TransactionImporterOption) portssvc.TransactionImporterSvc {
	svc := &transactionImporter{
		repo:      repo,
		validator: validator,
		batchSize: DefaultImportBatchSize,
		strategy:  domain.AtomicityStreaming,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.TransactionImporterSvc = (*transactionImporter)(nil)

// importStats summarises one run for logging.
type importStats struct {
	rows    int
	flushes int
	written int
}

// ImportTransactions reads input row by row, validates each row and saves valid rows in batches.
func (s *transactionImporter) ImportTransactions(ctx context.Context, input io.Reader) error {
	start := time.Now()
	var stats importStats
	var err error

	switch s.strategy {
	case domain.AtomicityTransactional:
		stats, err = s.transactional(ctx, input)
	case domain.AtomicityBufferAll:
		stats, err = s.bufferAll(ctx, input, &batchWriter{writer: s.repo})
	case domain.AtomicityStreaming:
		stats, err = s.stream(ctx, input, &batchWriter{writer: s.repo})
	default:
		err = fmt.Errorf("%w: unsupported atomicity strategy %q", apperrors.ErrValidation, s.strategy)
	}

	attrs := []any{
		slog.String("strategy", string(s.strategy)),
		slog.Int("rows", stats.rows),
		slog.Int("batches", stats.flushes),
		slog.Int("written", stats.written),
		slog.Duration("duration", time.Since(start)),
	}

	if err != nil {
		var invalidRow *apperrors.InvalidRowError
		if errors.As(err, &invalidRow) {
			s.LogWarn(ctx, "Rejected invalid transaction row",
				slog.Int("line", invalidRow.Line),
				slog.String("violations", invalidRow.ViolationSummary()))
		}
		s.LogError(ctx, err, "Transaction import failed", attrs...)
		return &apperrors.ImportFailedError{Err: err}
	}

	s.LogInfo(ctx, "Transaction import finished", attrs...)
	return nil
}

// stream flushes every full batch as soon as it fills up.
func (s *transactionImporter) stream(ctx context.Context, input io.Reader, w *batchWriter) (importStats, error) {
	batch := make([]domain.Transaction, 0, s.batchSize)
	rows, err := s.readTransactions(ctx, input, func(txn domain.Transaction) error {
		batch = append(batch, txn)
		if len(batch) < s.batchSize {
			return nil
		}
		if err := w.flush(ctx, batch); err != nil {
			return err
		}
		batch = make([]domain.Transaction, 0, s.batchSize)
		return nil
	})
	if err == nil {
		err = w.flush(ctx, batch)
	}
	return importStats{rows: rows, flushes: w.flushes, written: w.written}, err
}

// bufferAll validates the whole input before writing anything.
func (s *transactionImporter) bufferAll(ctx context.Context, input io.Reader, w *batchWriter) (importStats, error) {
	buffered, rows, err := s.collect(ctx, input)
	if err != nil {
		return importStats{rows: rows}, err
	}
	err = s.writeAll(ctx, buffered, w)
	return importStats{rows: rows, flushes: w.flushes, written: w.written}, err
}

// transactional validates the whole input first and only then opens one storage transaction for the writes.
// Reading happens outside the transaction so a slow upload never holds a connection other requests need.
func (s *transactionImporter) transactional(ctx context.Context, input io.Reader) (importStats, error) {
	buffered, rows, err := s.collect(ctx, input)
	if err != nil {
		return importStats{rows: rows}, err
	}

	stats := importStats{rows: rows}
	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context, writer portsrepo.TransactionWriter) error {
		w := &batchWriter{writer: writer}
		writeErr := s.writeAll(txCtx, buffered, w)
		stats.flushes, stats.written = w.flushes, w.written
		return writeErr
	})
	return stats, err
}

// collect reads and validates every row without touching storage.
func (s *transactionImporter) collect(ctx context.Context, input io.Reader) ([]domain.Transaction, int, error) {
	var buffered []domain.Transaction
	rows, err := s.readTransactions(ctx, input, func(txn domain.Transaction) error {
		buffered = append(buffered, txn)
		return nil
	})
	return buffered, rows, err
}

func (s *transactionImporter) writeAll(ctx context.Context, buffered []domain.Transaction, w *batchWriter) error {
	for start := 0; start < len(buffered); start += s.batchSize {
		end := min(start+s.batchSize, len(buffered))
		if err := w.flush(ctx, buffered[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// readTransactions skips the first line, then parses and validates each record before handing it to accept.
// It stops at the first failing row and returns the number of rows read.
func (s *transactionImporter) readTransactions(ctx context.Context, input io.Reader, accept func(domain.Transaction) error) (int, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read csv row: %w", err)
		}
		rows++
		line, _ := reader.FieldPos(0)

		txn, err := ParseRecord(line, record)
		if err != nil {
			return rows, err
		}

		if violations := s.validator.Validate(txn); len(violations) > 0 {
			return rows, &apperrors.InvalidRowError{
				Line:       line,
				Row:        strings.Join(record, ","),
				Violations: violations,
			}
		}

		if err := accept(txn); err != nil {
			return rows, err
		}
	}
}

// batchWriter issues exactly one bulk save per non-empty batch.
type batchWriter struct {
	writer  portsrepo.TransactionWriter
	flushes int
	written int
}

func (w *batchWriter) flush(ctx context.Context, batch []domain.Transaction) error {
	if len(batch) == 0 {
		return nil
	}
	if err := w.writer.SaveTransactions(ctx, batch); err != nil {
		return fmt.Errorf("failed to save batch of %d transactions: %w", len(batch), err)
	}
	w.flushes++
	w.written += len(batch)
	return nil
}
