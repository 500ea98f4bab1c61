// Package seed fills an empty colony database with the founding crew.
package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"gorm.io/gorm"
)

// CaptainEmail identifies the seeded captain. Seeding is skipped when a
// colonist with this email exists.
const CaptainEmail = "scott_chief@mars.org"

const (
	captainPassword = "secret"
	crewPassword    = "1"
)

// Result describes what Run did.
type Result struct {
	Created      bool
	CaptainID    uint64
	ColonistIDs  []uint64
	JobID        uint64
	DepartmentID uint64
}

var captain = services.RegisterInput{
	Surname:    "Scott",
	Name:       "Ridley",
	Age:        21,
	Position:   "captain",
	Speciality: "research engineer",
	Address:    "module_1",
	Email:      CaptainEmail,
	Password:   captainPassword,
}

var crew = []services.RegisterInput{
	{Surname: "Watson", Name: "Emma", Age: 30, Position: "engineer", Speciality: "mechanic", Address: "module_1", Email: "emma.watson@mars.org"},
	{Surname: "Kovacs", Name: "Ilya", Age: 17, Position: "technician", Speciality: "electronics", Address: "module_1", Email: "ilya.kovacs@mars.org"},
	{Surname: "Lee", Name: "Anna", Age: 25, Position: "biologist", Speciality: "researcher", Address: "module_2", Email: "anna.lee@mars.org"},
	{Surname: "Gonzalez", Name: "Carlos", Age: 40, Position: "chief_engineer", Speciality: "engineer", Address: "module_3", Email: "c.gonzalez@mars.org"},
	{Surname: "Nguyen", Name: "Linh", Age: 22, Position: "middle_scientist", Speciality: "geologist", Address: "module_1", Email: "linh.nguyen@mars.org"},
}

// Run inserts the captain, the crew, the first job and the geological
// department in one transaction. The schema must already exist.
func Run(db *gorm.DB, hasher credentials.Hasher, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}

	existing, err := repository.NewColonistRepository(db).FindByEmail(CaptainEmail)
	switch {
	case err == nil:
		log.Info("colony already seeded, skipping", slog.Uint64("captain_id", existing.ID))
		return &Result{CaptainID: existing.ID}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to look up captain: %w", err)
	}

	result := &Result{Created: true}
	err = db.Transaction(func(tx *gorm.DB) error {
		colonists := repository.NewColonistRepository(tx)
		auth := services.NewAuthService(colonists, hasher)
		jobs := services.NewJobService(repository.NewJobRepository(tx), colonists, repository.NewCategoryRepository(tx))
		departments := services.NewDepartmentService(repository.NewDepartmentRepository(tx), colonists)

		c, err := auth.Register(captain)
		if err != nil {
			return fmt.Errorf("failed to seed captain: %w", err)
		}
		result.CaptainID = c.ID

		for _, input := range crew {
			input.Password = crewPassword
			c, err := auth.Register(input)
			if err != nil {
				return fmt.Errorf("failed to seed colonist %s: %w", input.Email, err)
			}
			result.ColonistIDs = append(result.ColonistIDs, c.ID)
		}
		ids := result.ColonistIDs

		job, err := jobs.CreateJob(services.CreateJobInput{
			TeamLeaderID:  result.CaptainID,
			Description:   "deployment of residential modules 1 and 2",
			WorkSize:      15,
			Collaborators: membership.FromIDs([]uint64{ids[0], ids[1]}),
		})
		if err != nil {
			return fmt.Errorf("failed to seed job: %w", err)
		}
		result.JobID = job.ID

		email := "geo@mars.org"
		chief := ids[4]
		department, err := departments.CreateDepartment(services.DepartmentInput{
			Title:   "Geological Exploration",
			ChiefID: &chief,
			Members: membership.FromIDs([]uint64{ids[2], ids[4]}),
			Email:   &email,
		})
		if err != nil {
			return fmt.Errorf("failed to seed department: %w", err)
		}
		result.DepartmentID = department.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("colony seeded",
		slog.Uint64("captain_id", result.CaptainID),
		slog.Int("colonists", len(result.ColonistIDs)+1),
	)
	return result, nil
}
