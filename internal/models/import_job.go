package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportJob is the persisted form of an import job. Status holds the symbolic status name.
type ImportJob struct {
	ImportJobID  uuid.UUID `json:"importJobID"`
	StartedAt    time.Time `json:"startedAt"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"errorMessage"` // Nullable
}
