package repository

import (
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Omit("Jobs").Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByIDs(ids []uint64) ([]models.Category, error) {
	categories := []models.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) List() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Attach links a category to a job. Attaching twice is a no-op.
func (r *GormCategoryRepository) Attach(jobID, categoryID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return err
		}
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return err
		}
		return tx.Model(&job).Association("Categories").Append(&category)
	})
}

// DetachAll removes every category from a job
func (r *GormCategoryRepository) DetachAll(jobID uint64) error {
	return r.db.Exec("DELETE FROM "+models.JobCategoryTable+" WHERE job_id = ?", jobID).Error
}

// CategoriesOf lists the categories attached to a job, ordered by name
func (r *GormCategoryRepository) CategoriesOf(jobID uint64) ([]models.Category, error) {
	categories := []models.Category{}
	job := models.Job{ID: jobID}
	if err := r.db.Model(&job).Order("name").Association("Categories").Find(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Replace sets the job's categories to exactly categoryIDs in one
// transaction. Unknown category IDs fail with gorm.ErrRecordNotFound.
func (r *GormCategoryRepository) Replace(jobID uint64, categoryIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return err
		}

		categories := []models.Category{}
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
				return err
			}
			if len(categories) != len(uniqueIDs(categoryIDs)) {
				return gorm.ErrRecordNotFound
			}
		}

		if err := tx.Exec("DELETE FROM "+models.JobCategoryTable+" WHERE job_id = ?", jobID).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Model(&job).Association("Categories").Append(categories)
	})
}

// CountUsage counts the jobs a category is attached to
func (r *GormCategoryRepository) CountUsage(categoryID uint64) (int64, error) {
	var count int64
	err := r.db.Table(models.JobCategoryTable).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Delete deletes a category. The usage check and the delete run in one
// transaction; a category in use is left untouched.
func (r *GormCategoryRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		var inUse int64
		if err := tx.Table(models.JobCategoryTable).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("%w: %d job(s) reference category %d", ErrCategoryInUse, inUse, id)
		}

		return tx.Delete(&category).Error
	})
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
