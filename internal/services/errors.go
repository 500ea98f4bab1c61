package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/repository"
)

// Error categories. Specific errors below wrap one of these so callers can
// branch with errors.Is on either level.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrForbidden    = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrColonistNotFound    = fmt.Errorf("colonist %w", ErrNotFound)
	ErrJobNotFound         = fmt.Errorf("job %w", ErrNotFound)
	ErrDepartmentNotFound  = fmt.Errorf("department %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrUnknownCollaborator = fmt.Errorf("one or more colonists %w", ErrNotFound)

	ErrEmailTaken           = fmt.Errorf("email %w", ErrDuplicate)
	ErrCategoryExists       = fmt.Errorf("category %w", ErrDuplicate)
	ErrDepartmentEmailTaken = fmt.Errorf("department email %w", ErrDuplicate)

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCategoryInUse      = repository.ErrCategoryInUse
)
