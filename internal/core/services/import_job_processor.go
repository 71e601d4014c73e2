package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// StatusUpdateFailedEvent is reported when a finished import cannot be recorded on its job.
const StatusUpdateFailedEvent = "import_job_status_update_failed"

const processorDistinctID = "import-job-processor"

// EventSink receives operational events. *utils.PosthogClientWrapper satisfies it.
type EventSink interface {
	Enqueue(distinctId string, event string, properties map[string]any)
}

// ImportJobProcessor runs submitted imports in the background.
// The outcome of a run is visible only through the job's status.
type ImportJobProcessor struct {
	BaseService
	jobs     portssvc.ImportJobWriterSvc
	importer portssvc.TransactionImporterSvc
	sem      *semaphore.Weighted
	events   EventSink

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup

	failedStatusUpdates atomic.Int64
}

// ImportJobProcessorOption is a functional option for configuring the processor
type ImportJobProcessorOption func(*ImportJobProcessor)

// WithMaxConcurrentImports bounds how many imports run at once. Zero or less means unbounded.
func WithMaxConcurrentImports(limit int) ImportJobProcessorOption {
	return func(p *ImportJobProcessor) {
		if limit > 0 {
			p.sem = semaphore.NewWeighted(int64(limit))
		}
	}
}

// WithEventSink sets where status update failures are reported.
func WithEventSink(sink EventSink) ImportJobProcessorOption {
	return func(p *ImportJobProcessor) {
		p.events = sink
	}
}

// NewImportJobProcessor creates a processor that imports with importer and records outcomes through jobs.
func NewImportJobProcessor(jobs portssvc.ImportJobWriterSvc, importer portssvc.TransactionImporterSvc, options ...ImportJobProcessorOption) *ImportJobProcessor {
	p := &ImportJobProcessor{
		jobs:     jobs,
		importer: importer,
	}

	for _, option := range options {
		option(p)
	}

	return p
}

var _ portssvc.ImportJobProcessorSvc = (*ImportJobProcessor)(nil)

// Submit starts the import of input for job without waiting for it.
// The run keeps the values of ctx but not its cancellation.
func (p *ImportJobProcessor) Submit(ctx context.Context, job domain.ImportJob, input io.ReadCloser) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		_ = input.Close()
		return fmt.Errorf("%w: import job %s was not started", apperrors.ErrProcessorStopped, job.ID)
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(context.WithoutCancel(ctx), job, input)

	p.LogDebug(ctx, "Import job submitted", slog.String("import_job_id", job.ID.String()))
	return nil
}

// Stop refuses new submissions and waits for running imports or ctx expiry.
func (p *ImportJobProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for running imports: %w", ctx.Err())
	}
}

// FailedStatusUpdates returns how many finished runs could not be recorded on their job.
func (p *ImportJobProcessor) FailedStatusUpdates() int64 {
	return p.failedStatusUpdates.Load()
}

func (p *ImportJobProcessor) run(ctx context.Context, job domain.ImportJob, input io.ReadCloser) {
	defer p.wg.Done()
	ctx = p.WithImportJob(ctx, job.ID)
	defer func() {
		if err := input.Close(); err != nil {
			p.LogWarn(ctx, "Failed to close import input", slog.String("error", err.Error()))
		}
	}()

	if p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			p.finish(ctx, job.ID, err)
			return
		}
		defer p.sem.Release(1)
	}

	p.LogInfo(ctx, "Import job started")
	p.finish(ctx, job.ID, p.importSafely(ctx, input))
}

// importSafely turns a panic in the pipeline into an ordinary failure.
func (p *ImportJobProcessor) importSafely(ctx context.Context, input io.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transaction import panicked: %v", r)
		}
	}()
	return p.importer.ImportTransactions(ctx, input)
}

// finish records the run outcome on the job. Failures to do so stay inside this boundary.
func (p *ImportJobProcessor) finish(ctx context.Context, id uuid.UUID, runErr error) {
	if runErr == nil {
		if _, err := p.jobs.MarkImportJobCompleted(ctx, id); err != nil {
			p.reportStatusUpdateFailure(ctx, id, domain.ImportJobCompleted, err)
		}
		return
	}

	message := failureMessage(runErr)
	if _, err := p.jobs.MarkImportJobFailed(ctx, id, message); err != nil {
		p.reportStatusUpdateFailure(ctx, id, domain.ImportJobFailed, err)
	}
}

func (p *ImportJobProcessor) reportStatusUpdateFailure(ctx context.Context, id uuid.UUID, target domain.ImportJobStatus, err error) {
	total := p.failedStatusUpdates.Add(1)
	p.LogError(ctx, err, "Failed to record import job outcome",
		slog.String("status", string(target)),
		slog.Int64("failed_status_updates", total))

	if p.events == nil {
		return
	}
	p.events.Enqueue(processorDistinctID, StatusUpdateFailedEvent, map[string]any{
		"import_job_id": id.String(),
		"status":        string(target),
		"error":         err.Error(),
	})
}

// failureMessage prefers the message of the wrapped cause over the wrapper's own.
func failureMessage(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return err.Error()
}
