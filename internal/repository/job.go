package repository

import (
	"context"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
)

type UpdateJobInput struct {
	ID       string
	UserID   string
	Company  string
	Position string
	Status   *domain.Status // nil = keep current status
}

// UseCase depends on interface, not concrete implementation: Postgres, MongoDB
// and the in-memory store all satisfy it, and tests can pass a fake.
//
// Every method is scoped by owner. A job that exists but belongs to someone else
// is reported exactly like a missing one (domain.ErrJobNotFound), as is an id
// the backend cannot parse.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Job, error)
	// List returns newest first: created_at DESC, then id DESC.
	List(ctx context.Context, userID string) ([]*domain.Job, error)
	Update(ctx context.Context, input UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, id, userID string) error
}
