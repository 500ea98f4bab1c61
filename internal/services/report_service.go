package services

import (
	"log/slog"
	"time"

	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/metrics"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/reports"
	"gorm.io/gorm"
)

// ReportService runs the colony reports, each on its own session.
type ReportService struct {
	storage *database.Storage
	log     *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(storage *database.Storage, log *slog.Logger) *ReportService {
	return &ReportService{storage: storage, log: log}
}

func (s *ReportService) run(task string, fn func(db *gorm.DB) error) error {
	start := time.Now()
	err := s.storage.WithSession(fn)
	metrics.ObserveReport(task, start, err)
	if s.log != nil {
		if err != nil {
			s.log.Error("report failed", slog.String("task", task), slog.String("error", err.Error()))
		} else {
			s.log.Debug("report finished", slog.String("task", task), slog.Duration("took", time.Since(start)))
		}
	}
	return err
}

// ColonistsInModule lists the colonists living in module.
func (s *ReportService) ColonistsInModule(module string) ([]models.Colonist, error) {
	var out []models.Colonist
	err := s.run("module_residents", func(db *gorm.DB) (err error) {
		out, err = reports.ColonistsInModule(db, module)
		return err
	})
	return out, err
}

// IDsWithoutKeyword lists the ids of colonists in module whose speciality
// and position lack keyword.
func (s *ReportService) IDsWithoutKeyword(module, keyword string) ([]uint64, error) {
	var out []uint64
	err := s.run("ids_without_keyword", func(db *gorm.DB) (err error) {
		out, err = reports.IDsWithoutKeyword(db, module, keyword)
		return err
	})
	return out, err
}

// ColonistsYoungerThan lists colonists below age.
func (s *ReportService) ColonistsYoungerThan(age int) ([]reports.AgedColonist, error) {
	var out []reports.AgedColonist
	err := s.run("minors", func(db *gorm.DB) (err error) {
		out, err = reports.ColonistsYoungerThan(db, age)
		return err
	})
	return out, err
}

// ColonistsWithPositionKeywords lists colonists whose position contains any
// keyword.
func (s *ReportService) ColonistsWithPositionKeywords(keywords ...string) ([]models.Colonist, error) {
	var out []models.Colonist
	err := s.run("positions", func(db *gorm.DB) (err error) {
		out, err = reports.ColonistsWithPositionKeywords(db, keywords...)
		return err
	})
	return out, err
}

// ShortUnfinishedJobs lists unfinished jobs below maxHours.
func (s *ReportService) ShortUnfinishedJobs(maxHours int) ([]models.Job, error) {
	var out []models.Job
	err := s.run("short_jobs", func(db *gorm.DB) (err error) {
		out, err = reports.ShortUnfinishedJobs(db, maxHours)
		return err
	})
	return out, err
}

// LargestTeams lists the jobs with the largest team and that team size.
func (s *ReportService) LargestTeams() ([]reports.TeamReport, int, error) {
	var (
		out  []reports.TeamReport
		size int
	)
	err := s.run("largest_teams", func(db *gorm.DB) (err error) {
		out, size, err = reports.LargestTeams(db)
		return err
	})
	return out, size, err
}

// Relocate moves the selected colonists once confirm approves. Only
// privileged actors may relocate.
func (s *ReportService) Relocate(actor Actor, req reports.RelocationRequest, confirm reports.Confirmer) (*reports.RelocationResult, error) {
	if !PrivilegedOnly.Allow(actor, 0) {
		return nil, ErrForbidden
	}

	var out *reports.RelocationResult
	err := s.run("relocate", func(db *gorm.DB) (err error) {
		out, err = reports.Relocate(db, req, confirm)
		return err
	})
	if err != nil {
		return nil, err
	}

	if out.Confirmed {
		metrics.RelocatedColonists.Add(float64(out.Changed()))
		if s.log != nil {
			s.log.Info("colonists relocated",
				slog.Uint64("actor", actor.ID),
				slog.String("from", req.FromModule),
				slog.String("to", req.ToModule),
				slog.Int("moved", out.Changed()),
			)
		}
	}
	return out, nil
}

// DepartmentHours reports the finished hours of a department's members.
func (s *ReportService) DepartmentHours(q reports.HoursQuery) (*reports.DepartmentHoursResult, error) {
	var out *reports.DepartmentHoursResult
	err := s.run("department_hours", func(db *gorm.DB) (err error) {
		out, err = reports.DepartmentHours(db, q)
		return err
	})
	return out, err
}
