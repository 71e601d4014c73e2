package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/google/uuid"
)

// ImportJobStatus is the lifecycle state of an import job, persisted by name.
type ImportJobStatus string

const (
	ImportJobInProgress ImportJobStatus = "IN_PROGRESS"
	ImportJobCompleted  ImportJobStatus = "COMPLETED"
	ImportJobFailed     ImportJobStatus = "FAILED"
)

// IsTerminal reports whether no further transitions are expected.
func (s ImportJobStatus) IsTerminal() bool {
	return s == ImportJobCompleted || s == ImportJobFailed
}

// ParseImportJobStatus maps a persisted status name back to its value.
func ParseImportJobStatus(raw string) (ImportJobStatus, error) {
	switch s := ImportJobStatus(raw); s {
	case ImportJobInProgress, ImportJobCompleted, ImportJobFailed:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown import job status %q", apperrors.ErrValidation, raw)
	}
}

// ImportJob tracks one asynchronous CSV import.
// ErrorMessage is set if and only if Status is FAILED.
type ImportJob struct {
	ID           uuid.UUID       `json:"id"`
	StartedAt    time.Time       `json:"startedAt"`
	Status       ImportJobStatus `json:"status"`
	ErrorMessage *string         `json:"errorMessage,omitempty"`
}

// NewImportJob returns a fresh IN_PROGRESS job.
func NewImportJob(startedAt time.Time) ImportJob {
	return ImportJob{
		ID:        uuid.New(),
		StartedAt: startedAt,
		Status:    ImportJobInProgress,
	}
}

// Complete moves the job to COMPLETED. Completing an already completed job is a no-op.
func (j *ImportJob) Complete() error {
	switch j.Status {
	case ImportJobCompleted:
		return nil
	case ImportJobFailed:
		return fmt.Errorf("%w: import job %s already failed", apperrors.ErrInvalidTransition, j.ID)
	case ImportJobInProgress:
	}
	j.Status = ImportJobCompleted
	j.ErrorMessage = nil
	return nil
}

// Fail moves the job to FAILED with the given message. Failing an already failed job keeps the first message.
func (j *ImportJob) Fail(message string) error {
	switch j.Status {
	case ImportJobFailed:
		return nil
	case ImportJobCompleted:
		return fmt.Errorf("%w: import job %s already completed", apperrors.ErrInvalidTransition, j.ID)
	case ImportJobInProgress:
	}
	j.Status = ImportJobFailed
	j.ErrorMessage = &message
	return nil
}

// importJobIDLength is the length of the canonical 8-4-4-4-12 form.
const importJobIDLength = 36

// ParseImportJobID validates an external job identifier before any lookup happens.
// Only the canonical hyphenated form is accepted.
func ParseImportJobID(raw string) (uuid.UUID, error) {
	if len(raw) != importJobIDLength {
		return uuid.Nil, fmt.Errorf("%w: import job id %q", apperrors.ErrInvalidIdentifier, raw)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: import job id %q", apperrors.ErrInvalidIdentifier, raw)
	}
	return id, nil
}
