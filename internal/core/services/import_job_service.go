package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/google/uuid"
)

// importJobService tracks the lifecycle of import jobs
type importJobService struct {
	BaseService
	repo portsrepo.ImportJobRepository
	now  func() time.Time
}

// ImportJobServiceOption is a functional option for configuring the import job service
type ImportJobServiceOption func(*importJobService)

// WithImportJobClock overrides the clock used for StartedAt.
func WithImportJobClock(now func() time.Time) ImportJobServiceOption {
	return func(s *importJobService) {
		s.now = now
	}
}

// NewImportJobService creates a new import job service
func NewImportJobService(repo portsrepo.ImportJobRepository, options ...ImportJobServiceOption) portssvc.ImportJobSvcFacade {
	svc := &importJobService{
		repo: repo,
		now:  time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ImportJobSvcFacade = (*importJobService)(nil)

// CreateImportJob registers a new IN_PROGRESS job.
func (s *importJobService) CreateImportJob(ctx context.Context) (*domain.ImportJob, error) {
	job := domain.NewImportJob(s.now().UTC())

	if err := s.repo.SaveImportJob(ctx, job); err != nil {
		s.LogError(ctx, err, "Failed to save new import job", slog.String("import_job_id", job.ID.String()))
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}

	s.LogInfo(ctx, "Import job created", slog.String("import_job_id", job.ID.String()))
	return &job, nil
}

// GetImportJobByID returns the current state of a job.
func (s *importJobService) GetImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	job, err := s.repo.FindImportJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("import job with id %s not found: %w", id, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load import job", slog.String("import_job_id", id.String()))
		return nil, fmt.Errorf("failed to load import job %s: %w", id, err)
	}
	return job, nil
}

// MarkImportJobCompleted moves the job to COMPLETED.
func (s *importJobService) MarkImportJobCompleted(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	return s.transition(ctx, id, domain.ImportJobCompleted, func(job *domain.ImportJob) error {
		return job.Complete()
	})
}

// MarkImportJobFailed moves the job to FAILED with message.
func (s *importJobService) MarkImportJobFailed(ctx context.Context, id uuid.UUID, message string) (*domain.ImportJob, error) {
	return s.transition(ctx, id, domain.ImportJobFailed, func(job *domain.ImportJob) error {
		return job.Fail(message)
	})
}

// transition loads the job, applies change and persists the result.
// A job already in the target state is returned unchanged without a write.
func (s *importJobService) transition(ctx context.Context, id uuid.UUID, target domain.ImportJobStatus, change func(*domain.ImportJob) error) (*domain.ImportJob, error) {
	job, err := s.GetImportJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status == target {
		s.LogDebug(ctx, "Import job already in target state",
			slog.String("import_job_id", id.String()),
			slog.String("status", string(target)))
		return job, nil
	}

	if err := change(job); err != nil {
		s.LogWarn(ctx, "Rejected import job transition",
			slog.String("import_job_id", id.String()),
			slog.String("from", string(job.Status)),
			slog.String("to", string(target)))
		return nil, err
	}

	if err := s.repo.SaveImportJob(ctx, *job); err != nil {
		s.LogError(ctx, err, "Failed to save import job transition",
			slog.String("import_job_id", id.String()),
			slog.String("status", string(target)))
		return nil, fmt.Errorf("failed to update import job %s: %w", id, err)
	}

	s.LogInfo(ctx, "Import job updated",
		slog.String("import_job_id", id.String()),
		slog.String("status", string(job.Status)))
	return job, nil
}
