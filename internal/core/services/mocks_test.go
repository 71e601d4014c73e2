package services_test

import (
	"context"
	"io"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	args := m.Called(ctx, transactions)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

// WithinTransaction records the call and runs fn against the mock itself.
func (m *MockTransactionRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, writer portsrepo.TransactionWriter) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// --- Mock ImportJobRepository ---
type MockImportJobRepository struct {
	mock.Mock
}

func (m *MockImportJobRepository) SaveImportJob(ctx context.Context, job domain.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) FindImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

// --- Mock StatisticsRepository ---
type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) TopSpentByCategory(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	args := m.Called(ctx, topN, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopSpentBy), args.Error(1)
}

func (m *MockStatisticsRepository) TopSpentByYearMonth(ctx context.Context, topN int, currency string) ([]domain.TopSpentBy, error) {
	args := m.Called(ctx, topN, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopSpentBy), args.Error(1)
}

func (m *MockStatisticsRepository) BalanceByIBAN(ctx context.Context, iban string, currency string) (*domain.BalanceByAttribute, error) {
	args := m.Called(ctx, iban, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceByAttribute), args.Error(1)
}

// --- Mock ImportJobWriterSvc ---
type MockImportJobWriter struct {
	mock.Mock
}

func (m *MockImportJobWriter) CreateImportJob(ctx context.Context) (*domain.ImportJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportJobWriter) MarkImportJobCompleted(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportJobWriter) MarkImportJobFailed(ctx context.Context, id uuid.UUID, message string) (*domain.ImportJob, error) {
	args := m.Called(ctx, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

// --- Mock TransactionImporterSvc ---
type MockTransactionImporter struct {
	mock.Mock
}

func (m *MockTransactionImporter) ImportTransactions(ctx context.Context, input io.Reader) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// --- Mock ImportJobProcessorSvc ---
type MockImportJobProcessor struct {
	mock.Mock
}

func (m *MockImportJobProcessor) Submit(ctx context.Context, job domain.ImportJob, input io.ReadCloser) error {
	args := m.Called(ctx, job, input)
	return args.Error(0)
}

func (m *MockImportJobProcessor) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock EventSink ---
type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Enqueue(distinctId string, event string, properties map[string]any) {
	m.Called(distinctId, event, properties)
}

// trackingReadCloser records whether Close was called.
type trackingReadCloser struct {
	io.Reader
	closed chan struct{}
}

func newTrackingReadCloser(r io.Reader) *trackingReadCloser {
	return &trackingReadCloser{Reader: r, closed: make(chan struct{})}
}

func (t *trackingReadCloser) Close() error {
	close(t.closed)
	return nil
}

func (t *trackingReadCloser) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}
