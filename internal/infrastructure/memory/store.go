// Package memory is a process-local store used for ENV=local runs with
// DATABASE_URL=memory://local and as a realistic fake in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
	jobs  map[string]domain.Job
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]domain.User),
		jobs:  make(map[string]domain.Job),
		now:   time.Now,
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Jobs() *JobRepository { return &JobRepository{s: s} }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }

func newID() string {
	// v7 ids sort by creation time, which keeps List deterministic when
	// two jobs share a timestamp.
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrEmailTaken
		}
	}

	now := r.s.now().UTC()
	u := *user
	u.ID = newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = u

	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type JobRepository struct {
	s *Store
}

func (r *JobRepository) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	j := *job
	j.ID = newID()
	j.CreatedAt = now
	j.UpdatedAt = now
	r.s.jobs[j.ID] = j

	return &j, nil
}

func (r *JobRepository) GetByID(_ context.Context, id, userID string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.jobs[id]
	if !ok || j.UserID != userID {
		return nil, domain.ErrJobNotFound
	}
	return &j, nil
}

func (r *JobRepository) List(_ context.Context, userID string) ([]*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := make([]*domain.Job, 0)
	for _, j := range r.s.jobs {
		if j.UserID == userID {
			jobs = append(jobs, &j)
		}
	}

	sort.Slice(jobs, func(a, b int) bool {
		if !jobs[a].CreatedAt.Equal(jobs[b].CreatedAt) {
			return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
		}
		return jobs[a].ID > jobs[b].ID
	})
	return jobs, nil
}

func (r *JobRepository) Update(_ context.Context, input repository.UpdateJobInput) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[input.ID]
	if !ok || j.UserID != input.UserID {
		return nil, domain.ErrJobNotFound
	}

	j.Company = input.Company
	j.Position = input.Position
	if input.Status != nil {
		j.Status = *input.Status
	}
	j.UpdatedAt = r.s.now().UTC()
	r.s.jobs[j.ID] = j

	return &j, nil
}

func (r *JobRepository) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok || j.UserID != userID {
		return domain.ErrJobNotFound
	}
	delete(r.s.jobs, id)
	return nil
}
