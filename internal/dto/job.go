package dto

import (
	"time"

	"github.com/yukikurage/mars-colony-api/internal/models"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// JobDTO represents a job in API responses
type JobDTO struct {
	ID            uint64              `json:"id"`
	TeamLeaderID  uint64              `json:"team_leader"`
	Leader        *ColonistSummaryDTO `json:"leader,omitempty"`
	Job           string              `json:"job"`
	WorkSize      int                 `json:"work_size"`
	Collaborators []uint64            `json:"collaborators"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       *time.Time          `json:"end_date"`
	IsFinished    bool                `json:"is_finished"`
	Categories    []CategoryDTO       `json:"categories"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	result := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		result[i] = ToCategoryDTO(c)
	}
	return result
}

// ToJobDTO converts a Job model to JobDTO. The leader is included when it
// was loaded.
func ToJobDTO(job models.Job) JobDTO {
	dto := JobDTO{
		ID:            job.ID,
		TeamLeaderID:  job.TeamLeaderID,
		Job:           job.Description,
		WorkSize:      job.WorkSize,
		Collaborators: append([]uint64{}, job.Collaborators...),
		StartDate:     job.StartDate,
		EndDate:       job.EndDate,
		IsFinished:    job.IsFinished,
		Categories:    ToCategoryDTOs(job.Categories),
	}
	if job.Leader.ID != 0 {
		leader := ToColonistSummaryDTO(job.Leader)
		dto.Leader = &leader
	}
	return dto
}

// ToJobDTOs converts a slice of jobs
func ToJobDTOs(jobs []models.Job) []JobDTO {
	result := make([]JobDTO, len(jobs))
	for i, j := range jobs {
		result[i] = ToJobDTO(j)
	}
	return result
}
