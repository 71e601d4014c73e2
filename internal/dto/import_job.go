package dto

import (
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
)

// ImportJobResponse defines the data returned for an import job.
type ImportJobResponse struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"startedAt"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"errorMessage,omitempty"` // only set for FAILED jobs
}

// ToImportJobResponse converts a domain.ImportJob to ImportJobResponse DTO
func ToImportJobResponse(job *domain.ImportJob) ImportJobResponse {
	return ImportJobResponse{
		ID:           job.ID.String(),
		StartedAt:    job.StartedAt,
		Status:       string(job.Status),
		ErrorMessage: job.ErrorMessage,
	}
}
