package mapping

import (
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/SscSPs/transaction_analyzer/internal/models"
)

// ToModelImportJob converts a domain ImportJob to a model ImportJob
func ToModelImportJob(d domain.ImportJob) models.ImportJob {
	return models.ImportJob{
		ImportJobID:  d.ID,
		StartedAt:    d.StartedAt,
		Status:       string(d.Status),
		ErrorMessage: d.ErrorMessage,
	}
}

// ToDomainImportJob converts a model ImportJob to a domain ImportJob
func ToDomainImportJob(m models.ImportJob) domain.ImportJob {
	return domain.ImportJob{
		ID:           m.ImportJobID,
		StartedAt:    m.StartedAt,
		Status:       domain.ImportJobStatus(m.Status),
		ErrorMessage: m.ErrorMessage,
	}
}
