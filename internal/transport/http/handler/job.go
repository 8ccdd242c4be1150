package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/jobs-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type jobUsecaser interface {
	CreateJob(ctx context.Context, input usecase.CreateJobInput) (*domain.Job, error)
	ListJobs(ctx context.Context, userID string) ([]*domain.Job, error)
	GetJob(ctx context.Context, jobID, userID string) (*domain.Job, error)
	UpdateJob(ctx context.Context, input usecase.UpdateJobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID, userID string) error
}

type JobHandler struct {
	jobUsecase jobUsecaser
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type jobRequest struct {
	Company  string         `json:"company"  binding:"max=50"`
	Position string         `json:"position" binding:"max=100"`
	Status   *domain.Status `json:"status"   binding:"omitempty,oneof=pending interview declined"`
}

type jobResponse struct {
	ID        string        `json:"id"`
	Company   string        `json:"company"`
	Position  string        `json:"position"`
	Status    domain.Status `json:"status"`
	CreatedBy string        `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type listJobsResponse struct {
	Jobs  []jobResponse `json:"jobs"`
	Count int           `json:"count"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:        j.ID,
		Company:   j.Company,
		Position:  j.Position,
		Status:    j.Status,
		CreatedBy: j.UserID,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	jobs, err := h.jobUsecase.ListJobs(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	resp := listJobsResponse{Jobs: make([]jobResponse, 0, len(jobs)), Count: len(jobs)}
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, toJobResponse(j))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if !bindJSON(c, &req) {
		return
	}

	input := usecase.CreateJobInput{
		UserID:   c.GetString(middleware.ContextUserID),
		Company:  req.Company,
		Position: req.Position,
	}
	if req.Status != nil {
		input.Status = *req.Status
	}

	job, err := h.jobUsecase.CreateJob(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.logger.InfoContext(c.Request.Context(), "job created", "job_id", job.ID)
	c.JSON(http.StatusCreated, gin.H{"job": toJobResponse(job)})
}

// GET /jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.jobUsecase.GetJob(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// PATCH /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	var req jobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUsecase.UpdateJob(c.Request.Context(), usecase.UpdateJobInput{
		ID:       c.Param("id"),
		UserID:   c.GetString(middleware.ContextUserID),
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
	})
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	jobID := c.Param("id")
	if err := h.jobUsecase.DeleteJob(c.Request.Context(), jobID, c.GetString(middleware.ContextUserID)); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.logger.InfoContext(c.Request.Context(), "job deleted", "job_id", jobID)
	c.JSON(http.StatusOK, gin.H{})
}
