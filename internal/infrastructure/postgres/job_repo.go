package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, company, position, status, created_by, created_at, updated_at`

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate job id: %w", err)
	}

	query := `
		INSERT INTO jobs (id, company, position, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query, id, job.Company, job.Position, string(job.Status), job.UserID)

	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return created, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id, userID string) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrJobNotFound
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1 AND created_by = $2`

	return scanJob(r.db.QueryRow(ctx, query, id, userID))
}

func (r *JobRepository) List(ctx context.Context, userID string) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, input repository.UpdateJobInput) (*domain.Job, error) {
	if !validID(input.ID) {
		return nil, domain.ErrJobNotFound
	}

	var status *string
	if input.Status != nil {
		s := string(*input.Status)
		status = &s
	}

	query := `
		UPDATE jobs
		SET    company    = $3,
		       position   = $4,
		       status     = COALESCE($5, status),
		       updated_at = NOW()
		WHERE id = $1 AND created_by = $2
		RETURNING ` + jobColumns

	return scanJob(r.db.QueryRow(ctx, query, input.ID, input.UserID, input.Company, input.Position, status))
}

func (r *JobRepository) Delete(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return domain.ErrJobNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND created_by = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.UserID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
