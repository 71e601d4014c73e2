package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_analyzer/internal/models"
	"github.com/SscSPs/transaction_analyzer/internal/utils/mapping"
	"github.com/google/uuid"
)

type SQLiteImportJobRepository struct {
	BaseRepository
}

func newSQLiteImportJobRepository(db *sql.DB) portsrepo.ImportJobRepository {
	return &SQLiteImportJobRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.ImportJobRepository = (*SQLiteImportJobRepository)(nil)

// SaveImportJob upserts the job by ID. started_at is kept as RFC 3339 text in UTC.
func (r *SQLiteImportJobRepository) SaveImportJob(ctx context.Context, job domain.ImportJob) error {
	m := mapping.ToModelImportJob(job)
	query := `
		INSERT INTO import_jobs (import_job_id, started_at, status, error_message)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (import_job_id) DO UPDATE
		SET status = excluded.status, error_message = excluded.error_message;
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ImportJobID.String(),
		m.StartedAt.UTC().Format(time.RFC3339Nano),
		m.Status,
		m.ErrorMessage,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save import job "+m.ImportJobID.String(), err)
	}
	return nil
}

func (r *SQLiteImportJobRepository) FindImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	query := `
		SELECT import_job_id, started_at, status, error_message
		FROM import_jobs
		WHERE import_job_id = ?;
	`
	var m models.ImportJob
	var startedAt string
	var errorMessage sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id.String()).Scan(&m.ImportJobID, &startedAt, &m.Status, &errorMessage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find import job by ID "+id.String(), err)
	}

	m.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to parse started_at of import job "+id.String(), err)
	}
	if errorMessage.Valid {
		m.ErrorMessage = &errorMessage.String
	}

	d := mapping.ToDomainImportJob(m)
	return &d, nil
}
