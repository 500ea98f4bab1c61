package repository

import (
	"errors"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/utils"
)

// ErrCategoryInUse is returned when deleting a category that is still
// attached to at least one job.
var ErrCategoryInUse = errors.New("category is attached to one or more jobs")

// ColonistRepository defines the interface for colonist data access
type ColonistRepository interface {
	// Create creates a new colonist
	Create(colonist *models.Colonist) error

	// FindByID finds a colonist by ID
	FindByID(id uint64) (*models.Colonist, error)

	// FindByEmail finds a colonist by email
	FindByEmail(email string) (*models.Colonist, error)

	// FindByIDs returns the colonists among ids that exist
	FindByIDs(ids []uint64) ([]models.Colonist, error)

	// CountByIDs counts how many of the given colonist IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// Update updates a colonist
	Update(colonist *models.Colonist) error
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Job, error)

	// ListUnfinished lists jobs that are not finished, newest first
	ListUnfinished(params utils.PaginationParams) ([]models.Job, int64, error)

	// Update updates a job's own columns
	Update(job *models.Job) error

	// Delete deletes a job and its category associations
	Delete(id uint64) error
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(department *models.Department) error
	FindByID(id uint64) (*models.Department, error)
	FindByEmail(email string) (*models.Department, error)
	List() ([]models.Department, error)
	Update(department *models.Department) error
	Delete(id uint64) error
}

// CategoryRepository defines the interface for categories and their
// association with jobs
type CategoryRepository interface {
	Create(category *models.Category) error
	FindByID(id uint64) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	FindByIDs(ids []uint64) ([]models.Category, error)
	List() ([]models.Category, error)

	// Attach links a category to a job
	Attach(jobID, categoryID uint64) error

	// DetachAll removes every category from a job
	DetachAll(jobID uint64) error

	// CategoriesOf lists the categories attached to a job
	CategoriesOf(jobID uint64) ([]models.Category, error)

	// Replace sets the job's categories to exactly categoryIDs
	Replace(jobID uint64, categoryIDs []uint64) error

	// CountUsage counts the jobs a category is attached to
	CountUsage(categoryID uint64) (int64, error)

	// Delete deletes a category, refusing with ErrCategoryInUse while any
	// job references it
	Delete(id uint64) error
}
