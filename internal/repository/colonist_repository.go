package repository

import (
	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// GormColonistRepository is a GORM implementation of ColonistRepository
type GormColonistRepository struct {
	db *gorm.DB
}

// NewColonistRepository creates a new ColonistRepository
func NewColonistRepository(db *gorm.DB) ColonistRepository {
	return &GormColonistRepository{db: db}
}

// Create creates a new colonist
func (r *GormColonistRepository) Create(colonist *models.Colonist) error {
	return r.db.Create(colonist).Error
}

// FindByID finds a colonist by ID
func (r *GormColonistRepository) FindByID(id uint64) (*models.Colonist, error) {
	var colonist models.Colonist
	if err := r.db.First(&colonist, id).Error; err != nil {
		return nil, err
	}
	return &colonist, nil
}

// FindByEmail finds a colonist by email
func (r *GormColonistRepository) FindByEmail(email string) (*models.Colonist, error) {
	var colonist models.Colonist
	if err := r.db.Where("email = ?", email).First(&colonist).Error; err != nil {
		return nil, err
	}
	return &colonist, nil
}

// FindByIDs returns the colonists among ids that exist, ordered by ID
func (r *GormColonistRepository) FindByIDs(ids []uint64) ([]models.Colonist, error) {
	colonists := []models.Colonist{}
	if len(ids) == 0 {
		return colonists, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&colonists).Error; err != nil {
		return nil, err
	}
	return colonists, nil
}

// CountByIDs counts how many of the given colonist IDs exist
func (r *GormColonistRepository) CountByIDs(ids []uint64) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.Model(&models.Colonist{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Update updates a colonist
func (r *GormColonistRepository) Update(colonist *models.Colonist) error {
	return r.db.Omit("LedJobs", "Departments").Save(colonist).Error
}
