package services

import (
	"context"
	"io"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/google/uuid"
)

// TransactionImporterSvc streams a CSV source into storage.
type TransactionImporterSvc interface {
	// ImportTransactions reads, validates and persists every row of input.
	// Any failure is reported as *apperrors.ImportFailedError wrapping the cause.
	ImportTransactions(ctx context.Context, input io.Reader) error
}

// ImportJobReaderSvc defines read operations for import jobs
type ImportJobReaderSvc interface {
	// GetImportJobByID returns apperrors.ErrNotFound for unknown jobs.
	GetImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error)
}

// ImportJobWriterSvc defines the lifecycle transitions of import jobs
type ImportJobWriterSvc interface {
	// CreateImportJob registers a new IN_PROGRESS job.
	CreateImportJob(ctx context.Context) (*domain.ImportJob, error)

	// MarkImportJobCompleted moves the job to COMPLETED.
	MarkImportJobCompleted(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error)

	// MarkImportJobFailed moves the job to FAILED with the given message.
	MarkImportJobFailed(ctx context.Context, id uuid.UUID, message string) (*domain.ImportJob, error)
}

// ImportJobSvcFacade combines all import job service interfaces
type ImportJobSvcFacade interface {
	ImportJobReaderSvc
	ImportJobWriterSvc
}

// ImportJobProcessorSvc runs imports in the background and reports the outcome through job state only.
type ImportJobProcessorSvc interface {
	// Submit schedules the import of input for job and returns without waiting for it.
	// The processor owns input and closes it once the run finishes.
	Submit(ctx context.Context, job domain.ImportJob, input io.ReadCloser) error

	// Stop refuses new work and waits for running imports until ctx expires.
	Stop(ctx context.Context) error
}

// ImportSvc is the entry point used by the import endpoint.
type ImportSvc interface {
	// ProcessImport creates a job, hands input to the background processor and returns the IN_PROGRESS job.
	ProcessImport(ctx context.Context, input io.ReadCloser) (*domain.ImportJob, error)
}
