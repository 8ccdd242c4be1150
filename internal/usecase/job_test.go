package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/infrastructure/memory"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
	"github.com/ErlanBelekov/jobs-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

func newJobUsecase() *usecase.JobUsecase {
	return usecase.NewJobUsecase(memory.NewStore().Jobs())
}

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestCreateJob_DefaultsToPending(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()

	created, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, alice, created.UserID)

	got, err := uc.GetJob(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Engineer", got.Position)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestCreateJob_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   usecase.CreateJobInput
		want string
	}{
		{"missing company", usecase.CreateJobInput{UserID: alice, Position: "Engineer"}, "Please provide company and position"},
		{"missing position", usecase.CreateJobInput{UserID: alice, Company: "Acme"}, "Please provide company and position"},
		{"blank company", usecase.CreateJobInput{UserID: alice, Company: "  ", Position: "Engineer"}, "Please provide company and position"},
		{"long company", usecase.CreateJobInput{UserID: alice, Company: strings.Repeat("c", 51), Position: "Engineer"}, "company must be at most 50 characters"},
		{"long position", usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: strings.Repeat("p", 101)}, "position must be at most 100 characters"},
		{"bad status", usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer", Status: "hired"}, "status must be one of pending, interview, declined"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newJobUsecase().CreateJob(context.Background(), tc.in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.want, vErr.Message)
		})
	}
}

func TestListJobs_NewestFirstAndScoped(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()

	var ids []string
	for _, company := range []string{"First", "Second", "Third"} {
		j, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: company, Position: "Engineer"})
		require.NoError(t, err)
		ids = append(ids, j.ID)
	}
	_, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: bob, Company: "Other", Position: "Engineer"})
	require.NoError(t, err)

	jobs, err := uc.ListJobs(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, ids[2], jobs[0].ID)
	assert.Equal(t, ids[1], jobs[1].ID)
	assert.Equal(t, ids[0], jobs[2].ID)
	for _, j := range jobs {
		assert.Equal(t, alice, j.UserID)
	}
}

func TestListJobs_Empty(t *testing.T) {
	jobs, err := newJobUsecase().ListJobs(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestJobOwnership_Isolated(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()

	j, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	_, err = uc.GetJob(ctx, j.ID, bob)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: j.ID, UserID: bob, Company: "Stolen", Position: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	err = uc.DeleteJob(ctx, j.ID, bob)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	got, err := uc.GetJob(ctx, j.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}

func TestJob_MissingID(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()

	_, err := uc.GetJob(ctx, "does-not-exist", alice)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: "does-not-exist", UserID: alice, Company: "Acme", Position: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	assert.ErrorIs(t, uc.DeleteJob(ctx, "does-not-exist", alice), domain.ErrJobNotFound)
}

func TestUpdateJob(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()

	j, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	updated, err := uc.UpdateJob(ctx, usecase.UpdateJobInput{
		ID: j.ID, UserID: alice, Company: "Acme Corp", Position: "Staff Engineer", Status: statusPtr(domain.StatusInterview),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Company)
	assert.Equal(t, domain.StatusInterview, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(j.UpdatedAt))
	assert.Equal(t, j.CreatedAt, updated.CreatedAt)

	// nil status leaves it untouched
	again, err := uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: j.ID, UserID: alice, Company: "Acme Corp", Position: "Staff Engineer"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterview, again.Status)

	// any transition is allowed
	back, err := uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: j.ID, UserID: alice, Company: "Acme Corp", Position: "Staff Engineer", Status: statusPtr(domain.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, back.Status)
}

func TestUpdateJob_Validation(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()
	j, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	_, err = uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: j.ID, UserID: alice, Company: "", Position: "Engineer"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please provide company and position", vErr.Message)

	_, err = uc.UpdateJob(ctx, usecase.UpdateJobInput{ID: j.ID, UserID: alice, Company: "Acme", Position: "Engineer", Status: statusPtr("hired")})
	require.ErrorAs(t, err, &vErr)
}

func TestDeleteJob(t *testing.T) {
	uc := newJobUsecase()
	ctx := context.Background()
	j, err := uc.CreateJob(ctx, usecase.CreateJobInput{UserID: alice, Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteJob(ctx, j.ID, alice))

	_, err = uc.GetJob(ctx, j.ID, alice)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.ErrorIs(t, uc.DeleteJob(ctx, j.ID, alice), domain.ErrJobNotFound)
}

type failingJobs struct {
	repository.JobRepository
	err error
}

func (f failingJobs) List(context.Context, string) ([]*domain.Job, error) { return nil, f.err }

func TestListJobs_WrapsStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	uc := usecase.NewJobUsecase(failingJobs{err: storeErr})

	_, err := uc.ListJobs(context.Background(), alice)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "list jobs")
}
