package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"gorm.io/gorm"
)

// DepartmentService provides business logic for departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
	colonists   repository.ColonistRepository
	policy      Policy
}

// NewDepartmentService creates a new DepartmentService. Changes are allowed
// to the chief or a privileged actor.
func NewDepartmentService(departments repository.DepartmentRepository, colonists repository.ColonistRepository) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		colonists:   colonists,
		policy:      OwnerOrPrivileged,
	}
}

// WithPolicy replaces the authorization policy for updates and deletes.
func (s *DepartmentService) WithPolicy(policy Policy) *DepartmentService {
	s.policy = policy
	return s
}

// DepartmentInput represents parameters to create a department.
type DepartmentInput struct {
	Title   string  `validate:"required,max=255"`
	ChiefID *uint64 `validate:"omitnil,gt=0"`
	Members membership.Source
	Email   *string `validate:"omitnil,email,max=255"`
}

// UpdateDepartmentInput lists the fields to change. ClearChief and
// ClearEmail unset the optional columns.
type UpdateDepartmentInput struct {
	Title      *string `validate:"omitnil,min=1,max=255"`
	ChiefID    *uint64 `validate:"omitnil,gt=0"`
	ClearChief bool
	Members    membership.Source
	Email      *string `validate:"omitnil,email,max=255"`
	ClearEmail bool
}

// ListDepartments returns every department.
func (s *DepartmentService) ListDepartments() ([]models.Department, error) {
	departments, err := s.departments.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// GetDepartment returns a department with its chief.
func (s *DepartmentService) GetDepartment(id uint64) (*models.Department, error) {
	department, err := s.departments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return department, nil
}

// CreateDepartment validates references and creates a department.
func (s *DepartmentService) CreateDepartment(input DepartmentInput) (*models.Department, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	members, err := input.Members.NormalizeStrict()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := ensureColonists(s.colonists, members); err != nil {
		return nil, err
	}
	if input.ChiefID != nil {
		if err := s.ensureChief(*input.ChiefID); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := s.ensureEmailFree(*input.Email, 0); err != nil {
			return nil, err
		}
	}

	department := &models.Department{
		Title:   input.Title,
		ChiefID: input.ChiefID,
		Members: members,
		Email:   input.Email,
	}
	if err := s.departments.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return s.GetDepartment(department.ID)
}

// UpdateDepartment updates a department.
func (s *DepartmentService) UpdateDepartment(actor Actor, id uint64, input UpdateDepartmentInput) (*models.Department, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	department, err := s.GetDepartment(id)
	if err != nil {
		return nil, err
	}
	if !s.policy.Allow(actor, chiefOf(department)) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: department title cannot be empty", ErrInvalidInput)
		}
		department.Title = title
	}
	if input.ClearChief {
		department.ChiefID = nil
	} else if input.ChiefID != nil {
		if err := s.ensureChief(*input.ChiefID); err != nil {
			return nil, err
		}
		department.ChiefID = input.ChiefID
	}
	if !input.Members.IsZero() {
		members, err := input.Members.NormalizeStrict()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if err := ensureColonists(s.colonists, members); err != nil {
			return nil, err
		}
		department.Members = members
	}
	if input.ClearEmail {
		department.Email = nil
	} else if input.Email != nil {
		if err := s.ensureEmailFree(*input.Email, department.ID); err != nil {
			return nil, err
		}
		department.Email = input.Email
	}

	department.Chief = nil
	if err := s.departments.Update(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return s.GetDepartment(department.ID)
}

// DeleteDepartment removes a department.
func (s *DepartmentService) DeleteDepartment(actor Actor, id uint64) error {
	department, err := s.GetDepartment(id)
	if err != nil {
		return err
	}
	if !s.policy.Allow(actor, chiefOf(department)) {
		return ErrForbidden
	}

	if err := s.departments.Delete(id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func (s *DepartmentService) ensureChief(id uint64) error {
	if _, err := s.colonists.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColonistNotFound
		}
		return fmt.Errorf("failed to find chief: %w", err)
	}
	return nil
}

func (s *DepartmentService) ensureEmailFree(email string, selfID uint64) error {
	existing, err := s.departments.FindByEmail(email)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return ErrDepartmentEmailTaken
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check department email: %w", err)
	}
}

func chiefOf(department *models.Department) uint64 {
	if department.ChiefID == nil {
		return 0
	}
	return *department.ChiefID
}
