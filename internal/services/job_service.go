package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"github.com/yukikurage/mars-colony-api/internal/utils"
	"gorm.io/gorm"
)

// JobService handles job business logic
type JobService struct {
	jobs       repository.JobRepository
	colonists  repository.ColonistRepository
	categories repository.CategoryRepository
	policy     Policy
}

// NewJobService creates a new JobService. Changes are allowed to the team
// leader or a privileged actor.
func NewJobService(jobs repository.JobRepository, colonists repository.ColonistRepository, categories repository.CategoryRepository) *JobService {
	return &JobService{
		jobs:       jobs,
		colonists:  colonists,
		categories: categories,
		policy:     OwnerOrPrivileged,
	}
}

// WithPolicy replaces the authorization policy for updates and deletes.
func (s *JobService) WithPolicy(policy Policy) *JobService {
	s.policy = policy
	return s
}

// CreateJobInput represents input for creating a job
type CreateJobInput struct {
	TeamLeaderID  uint64 `validate:"required"`
	Description   string `validate:"required"`
	WorkSize      int    `validate:"gte=0"`
	Collaborators membership.Source
	StartDate     *time.Time
	EndDate       *time.Time
	IsFinished    bool
	CategoryIDs   []uint64
}

// UpdateJobInput represents input for updating a job. Nil fields are left
// untouched; a non-nil CategoryIDs replaces the whole category set.
type UpdateJobInput struct {
	TeamLeaderID  *uint64 `validate:"omitnil,gt=0"`
	Description   *string `validate:"omitnil,min=1"`
	WorkSize      *int    `validate:"omitnil,gte=0"`
	Collaborators membership.Source
	EndDate       *time.Time
	ClearEndDate  bool
	IsFinished    *bool
	CategoryIDs   []uint64
}

// ListUnfinished returns the unfinished jobs, newest first
func (s *JobService) ListUnfinished(params utils.PaginationParams) ([]models.Job, int64, error) {
	jobs, total, err := s.jobs.ListUnfinished(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// GetJob returns a job with its leader and categories
func (s *JobService) GetJob(id uint64) (*models.Job, error) {
	job, err := s.jobs.FindByID(id, "Leader", "Categories")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return job, nil
}

// CreateJob validates references and creates a job with its categories
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	collaborators, err := s.resolveCollaborators(input.Collaborators)
	if err != nil {
		return nil, err
	}
	if err := s.ensureColonist(input.TeamLeaderID); err != nil {
		return nil, err
	}
	if err := s.ensureCategories(input.CategoryIDs); err != nil {
		return nil, err
	}

	job := &models.Job{
		TeamLeaderID:  input.TeamLeaderID,
		Description:   input.Description,
		WorkSize:      input.WorkSize,
		Collaborators: collaborators,
		EndDate:       input.EndDate,
		IsFinished:    input.IsFinished,
	}
	if input.StartDate != nil {
		job.StartDate = *input.StartDate
	}

	if err := s.jobs.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if len(input.CategoryIDs) > 0 {
		if err := s.categories.Replace(job.ID, input.CategoryIDs); err != nil {
			return nil, fmt.Errorf("failed to attach categories: %w", err)
		}
	}

	return s.GetJob(job.ID)
}

// UpdateJob updates an existing job
func (s *JobService) UpdateJob(actor Actor, id uint64, input UpdateJobInput) (*models.Job, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}
	if !s.policy.Allow(actor, job.TeamLeaderID) {
		return nil, ErrForbidden
	}

	if input.TeamLeaderID != nil && *input.TeamLeaderID != job.TeamLeaderID {
		if err := s.ensureColonist(*input.TeamLeaderID); err != nil {
			return nil, err
		}
		job.TeamLeaderID = *input.TeamLeaderID
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: job description cannot be empty", ErrInvalidInput)
		}
		job.Description = description
	}
	if input.WorkSize != nil {
		job.WorkSize = *input.WorkSize
	}
	if !input.Collaborators.IsZero() {
		collaborators, err := s.resolveCollaborators(input.Collaborators)
		if err != nil {
			return nil, err
		}
		job.Collaborators = collaborators
	}
	if input.ClearEndDate {
		job.EndDate = nil
	} else if input.EndDate != nil {
		job.EndDate = input.EndDate
	}
	if input.IsFinished != nil {
		job.IsFinished = *input.IsFinished
	}
	if input.CategoryIDs != nil {
		if err := s.ensureCategories(input.CategoryIDs); err != nil {
			return nil, err
		}
	}

	if err := s.jobs.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if input.CategoryIDs != nil {
		if err := s.categories.Replace(job.ID, input.CategoryIDs); err != nil {
			return nil, fmt.Errorf("failed to replace categories: %w", err)
		}
	}

	return s.GetJob(job.ID)
}

// DeleteJob deletes a job and its category links
func (s *JobService) DeleteJob(actor Actor, id uint64) error {
	job, err := s.jobs.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to find job: %w", err)
	}

	if !s.policy.Allow(actor, job.TeamLeaderID) {
		return ErrForbidden
	}

	if err := s.jobs.Delete(id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func (s *JobService) resolveCollaborators(src membership.Source) (membership.List, error) {
	ids, err := src.NormalizeStrict()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := ensureColonists(s.colonists, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *JobService) ensureColonist(id uint64) error {
	if _, err := s.colonists.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColonistNotFound
		}
		return fmt.Errorf("failed to find colonist: %w", err)
	}
	return nil
}

func (s *JobService) ensureCategories(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	unique := uniqueUint64(ids)
	found, err := s.categories.FindByIDs(unique)
	if err != nil {
		return fmt.Errorf("failed to verify categories: %w", err)
	}
	if len(found) != len(unique) {
		return ErrCategoryNotFound
	}
	return nil
}

// ensureColonists checks every id names an existing colonist.
func ensureColonists(colonists repository.ColonistRepository, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := colonists.CountByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify colonists: %w", err)
	}
	if int(count) != len(ids) {
		return ErrUnknownCollaborator
	}
	return nil
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
