package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles registration, login and colonist profiles.
type AuthService struct {
	colonists repository.ColonistRepository
	hasher    credentials.Hasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(colonists repository.ColonistRepository, hasher credentials.Hasher) *AuthService {
	return &AuthService{
		colonists: colonists,
		hasher:    hasher,
	}
}

// RegisterInput represents the information needed to register a colonist.
type RegisterInput struct {
	Surname    string `validate:"max=255"`
	Name       string `validate:"required,max=255"`
	Age        int    `validate:"gte=0,lte=120"`
	Position   string `validate:"max=255"`
	Speciality string `validate:"max=255"`
	Address    string `validate:"max=255"`
	Email      string `validate:"required,email,max=255"`
	Password   string `validate:"required"`
}

// Register creates a colonist with a hashed password.
func (s *AuthService) Register(input RegisterInput) (*models.Colonist, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Surname = strings.TrimSpace(input.Surname)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(input.Email, 0); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	colonist := &models.Colonist{
		Surname:        input.Surname,
		Name:           input.Name,
		Age:            input.Age,
		Position:       input.Position,
		Speciality:     input.Speciality,
		Address:        input.Address,
		Email:          input.Email,
		HashedPassword: digest,
	}
	if err := s.colonists.Create(colonist); err != nil {
		return nil, fmt.Errorf("failed to create colonist: %w", err)
	}

	return colonist, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated colonist.
func (s *AuthService) Login(input LoginInput) (*models.Colonist, error) {
	colonist, err := s.colonists.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find colonist: %w", err)
	}

	if !s.hasher.Verify(input.Password, colonist.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return colonist, nil
}

// GetColonist retrieves a colonist by ID.
func (s *AuthService) GetColonist(id uint64) (*models.Colonist, error) {
	colonist, err := s.colonists.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColonistNotFound
		}
		return nil, fmt.Errorf("failed to find colonist: %w", err)
	}

	return colonist, nil
}

// UpdateProfileInput lists the profile fields to change. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	Surname    *string `validate:"omitnil,max=255"`
	Name       *string `validate:"omitnil,min=1,max=255"`
	Age        *int    `validate:"omitnil,gte=0,lte=120"`
	Position   *string `validate:"omitnil,max=255"`
	Speciality *string `validate:"omitnil,max=255"`
	Address    *string `validate:"omitnil,max=255"`
	Email      *string `validate:"omitnil,email,max=255"`
	Password   *string `validate:"omitnil,min=1"`
}

// UpdateProfile changes a colonist's profile. Only the colonist themself or a
// privileged actor may do so.
func (s *AuthService) UpdateProfile(actor Actor, id uint64, input UpdateProfileInput) (*models.Colonist, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	colonist, err := s.GetColonist(id)
	if err != nil {
		return nil, err
	}
	if !OwnerOrPrivileged.Allow(actor, colonist.ID) {
		return nil, ErrForbidden
	}

	if input.Surname != nil {
		colonist.Surname = strings.TrimSpace(*input.Surname)
	}
	if input.Name != nil {
		colonist.Name = strings.TrimSpace(*input.Name)
	}
	if input.Age != nil {
		colonist.Age = *input.Age
	}
	if input.Position != nil {
		colonist.Position = *input.Position
	}
	if input.Speciality != nil {
		colonist.Speciality = *input.Speciality
	}
	if input.Address != nil {
		colonist.Address = *input.Address
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != colonist.Email {
			if err := s.ensureEmailFree(email, colonist.ID); err != nil {
				return nil, err
			}
			colonist.Email = email
		}
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		colonist.HashedPassword = digest
	}

	if err := s.colonists.Update(colonist); err != nil {
		return nil, fmt.Errorf("failed to update colonist: %w", err)
	}

	return colonist, nil
}

func (s *AuthService) ensureEmailFree(email string, selfID uint64) error {
	existing, err := s.colonists.FindByEmail(email)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return ErrEmailTaken
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check email: %w", err)
	}
}
