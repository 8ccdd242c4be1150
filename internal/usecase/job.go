package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/metrics"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
)

const (
	maxCompanyLen  = 50
	maxPositionLen = 100
)

type JobUsecase struct {
	repo repository.JobRepository
}

func NewJobUsecase(repo repository.JobRepository) *JobUsecase {
	return &JobUsecase{repo: repo}
}

type CreateJobInput struct {
	UserID   string
	Company  string
	Position string
	Status   domain.Status // empty = pending
}

type UpdateJobInput struct {
	ID       string
	UserID   string
	Company  string
	Position string
	Status   *domain.Status // nil = unchanged
}

func validateJobFields(company, position string) error {
	if company == "" || position == "" {
		return domain.NewValidationError("Please provide company and position")
	}
	if len([]rune(company)) > maxCompanyLen {
		return domain.NewValidationError("company must be at most %d characters", maxCompanyLen)
	}
	if len([]rune(position)) > maxPositionLen {
		return domain.NewValidationError("position must be at most %d characters", maxPositionLen)
	}
	return nil
}

func validateStatus(s domain.Status) error {
	if !s.Valid() {
		return domain.NewValidationError("status must be one of pending, interview, declined")
	}
	return nil
}

func (u *JobUsecase) CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	if err := validateJobFields(input.Company, input.Position); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if err := validateStatus(input.Status); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &domain.Job{
		Company:  input.Company,
		Position: input.Position,
		Status:   input.Status,
		UserID:   input.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	metrics.JobOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

func (u *JobUsecase) ListJobs(ctx context.Context, userID string) ([]*domain.Job, error) {
	jobs, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (u *JobUsecase) GetJob(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	job, err := u.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) UpdateJob(ctx context.Context, input UpdateJobInput) (*domain.Job, error) {
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	if err := validateJobFields(input.Company, input.Position); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	job, err := u.repo.Update(ctx, repository.UpdateJobInput{
		ID:       input.ID,
		UserID:   input.UserID,
		Company:  input.Company,
		Position: input.Position,
		Status:   input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	metrics.JobOperationsTotal.WithLabelValues("update").Inc()
	return job, nil
}

func (u *JobUsecase) DeleteJob(ctx context.Context, jobID, userID string) error {
	if err := u.repo.Delete(ctx, jobID, userID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	metrics.JobOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}
