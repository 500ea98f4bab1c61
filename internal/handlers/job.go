package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/dto"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/middleware"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"github.com/yukikurage/mars-colony-api/internal/utils"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// ListJobs returns the unfinished jobs, newest first
func (h *JobHandler) ListJobs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobService.ListUnfinished(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobListResponse{
		Jobs:       dto.ToJobDTOs(jobs),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: utils.TotalPages(total, params.Limit),
	})
}

// GetJob returns a specific job
// Job is already loaded with relations by RequireJob middleware
func (h *JobHandler) GetJob(c *gin.Context) {
	job, ok := middleware.GetJob(c)
	if !ok {
		apierrors.InternalError(c, "Job not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(job))
}

// CreateJob creates a new job
func (h *JobHandler) CreateJob(c *gin.Context) {
	type CreateJobRequest struct {
		TeamLeaderID  uint64          `json:"team_leader" binding:"required"`
		Job           string          `json:"job" binding:"required"`
		WorkSize      int             `json:"work_size"`
		Collaborators membershipField `json:"collaborators"`
		StartDate     *time.Time      `json:"start_date"`
		EndDate       *time.Time      `json:"end_date"`
		IsFinished    bool            `json:"is_finished"`
		CategoryIDs   []uint64        `json:"category_ids"`
	}

	if _, ok := currentActor(c); !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	job, err := h.jobService.CreateJob(services.CreateJobInput{
		TeamLeaderID:  req.TeamLeaderID,
		Description:   req.Job,
		WorkSize:      req.WorkSize,
		Collaborators: req.Collaborators.Source,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsFinished:    req.IsFinished,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// UpdateJob updates an existing job
func (h *JobHandler) UpdateJob(c *gin.Context) {
	type UpdateJobRequest struct {
		TeamLeaderID  *uint64         `json:"team_leader"`
		Job           *string         `json:"job"`
		WorkSize      *int            `json:"work_size"`
		Collaborators membershipField `json:"collaborators"`
		EndDate       *time.Time      `json:"end_date"`
		ClearEndDate  bool            `json:"clear_end_date"`
		IsFinished    *bool           `json:"is_finished"`
		CategoryIDs   []uint64        `json:"category_ids"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	job, ok := middleware.GetJob(c)
	if !ok {
		apierrors.InternalError(c, "Job not found in context")
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.jobService.UpdateJob(actor, job.ID, services.UpdateJobInput{
		TeamLeaderID:  req.TeamLeaderID,
		Description:   req.Job,
		WorkSize:      req.WorkSize,
		Collaborators: req.Collaborators.Source,
		EndDate:       req.EndDate,
		ClearEndDate:  req.ClearEndDate,
		IsFinished:    req.IsFinished,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*updated))
}

// DeleteJob deletes a job
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	job, ok := middleware.GetJob(c)
	if !ok {
		apierrors.InternalError(c, "Job not found in context")
		return
	}

	if err := h.jobService.DeleteJob(actor, job.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
