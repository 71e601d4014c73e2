package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
)

// importService accepts uploads and hands them to the background processor
type importService struct {
	BaseService
	jobs      portssvc.ImportJobWriterSvc
	processor portssvc.ImportJobProcessorSvc
}

// NewImportService creates a new import service
func NewImportService(jobs portssvc.ImportJobWriterSvc, processor portssvc.ImportJobProcessorSvc) portssvc.ImportSvc {
	return &importService{
		jobs:      jobs,
		processor: processor,
	}
}

var _ portssvc.ImportSvc = (*importService)(nil)

// ProcessImport creates a job and submits input for it; the returned job is IN_PROGRESS.
func (s *importService) ProcessImport(ctx context.Context, input io.ReadCloser) (*domain.ImportJob, error) {
	job, err := s.jobs.CreateImportJob(ctx)
	if err != nil {
		_ = input.Close()
		return nil, err
	}

	if err := s.processor.Submit(ctx, *job, input); err != nil {
		s.LogError(ctx, err, "Failed to submit import job", slog.String("import_job_id", job.ID.String()))
		if _, markErr := s.jobs.MarkImportJobFailed(ctx, job.ID, err.Error()); markErr != nil {
			s.LogError(ctx, markErr, "Failed to mark unsubmitted import job as failed", slog.String("import_job_id", job.ID.String()))
		}
		return nil, fmt.Errorf("failed to start import job %s: %w", job.ID, err)
	}

	return job, nil
}
