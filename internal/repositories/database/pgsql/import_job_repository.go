package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_analyzer/internal/models"
	"github.com/SscSPs/transaction_analyzer/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxImportJobRepository struct {
	BaseRepository
}

func newPgxImportJobRepository(pool *pgxpool.Pool) portsrepo.ImportJobRepository {
	return &PgxImportJobRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ImportJobRepository = (*PgxImportJobRepository)(nil)

// SaveImportJob upserts the job by ID.
func (r *PgxImportJobRepository) SaveImportJob(ctx context.Context, job domain.ImportJob) error {
	m := mapping.ToModelImportJob(job)
	query := `
		INSERT INTO import_jobs (import_job_id, started_at, status, error_message)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (import_job_id) DO UPDATE
		SET status = EXCLUDED.status, error_message = EXCLUDED.error_message;
	`
	_, err := r.Pool.Exec(ctx, query, m.ImportJobID, m.StartedAt, m.Status, m.ErrorMessage)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save import job "+m.ImportJobID.String(), err)
	}
	return nil
}

func (r *PgxImportJobRepository) FindImportJobByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	query := `
		SELECT import_job_id, started_at, status, error_message
		FROM import_jobs
		WHERE import_job_id = $1;
	`
	var m models.ImportJob
	err := r.Pool.QueryRow(ctx, query, id).Scan(&m.ImportJobID, &m.StartedAt, &m.Status, &m.ErrorMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find import job by ID "+id.String(), err)
	}

	d := mapping.ToDomainImportJob(m)
	return &d, nil
}
