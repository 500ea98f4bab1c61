package repository

import (
	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Omit(clause.Associations).Create(department).Error
}

func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var department models.Department
	if err := r.db.Preload("Chief").First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormDepartmentRepository) FindByEmail(email string) (*models.Department, error) {
	var department models.Department
	if err := r.db.Where("email = ?", email).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormDepartmentRepository) List() ([]models.Department, error) {
	departments := []models.Department{}
	if err := r.db.Preload("Chief").Order("id").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Omit(clause.Associations).Save(department).Error
}

func (r *GormDepartmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Department{}, id).Error
}
