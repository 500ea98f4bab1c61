package repository

import (
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job without touching its associations
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Omit(clause.Associations).Create(job).Error
}

// FindByID finds a job by ID with optional preloading
func (r *GormJobRepository) FindByID(id uint64, preload ...string) (*models.Job, error) {
	var job models.Job
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&job, id).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// ListUnfinished lists jobs that are not finished, newest first
func (r *GormJobRepository) ListUnfinished(params utils.PaginationParams) ([]models.Job, int64, error) {
	jobs := []models.Job{}
	query := r.db.Model(&models.Job{}).Where("is_finished = ?", false).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("start_date DESC").Order("id DESC").Scopes(database.Paginate(params))
	if err := listQuery.Preload("Leader").Preload("Categories").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update updates a job's own columns
func (r *GormJobRepository) Update(job *models.Job) error {
	return r.db.Omit(clause.Associations).Save(job).Error
}

// Delete deletes a job and its category associations in a transaction
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+models.JobCategoryTable+" WHERE job_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Job{}, id).Error
	})
}
