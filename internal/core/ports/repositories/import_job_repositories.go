package repositories

import (
	"context"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/google/uuid"
)

// ImportJobRepository persists import job state.
type ImportJobRepository interface {
	// SaveImportJob inserts the job or overwrites the stored copy with the same ID.
	SaveImportJob(ctx context.Context, job domain.ImportJob) error

	// FindImportJobByID returns apperrors.ErrNotFound when no job has the given ID.
	FindImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error)
}
