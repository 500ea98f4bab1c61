package reports

import (
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// TeamReport is a job with its team size and resolved leader name.
type TeamReport struct {
	Job         models.Job
	TeamSize    int
	LeaderName  string
	LeaderFound bool
}

// LargestTeams returns every job whose collaborator count equals the
// largest count over all jobs, ties included, in job id order. It also
// returns that count; with no jobs the result is empty and the count zero.
func LargestTeams(db *gorm.DB) ([]TeamReport, int, error) {
	jobs := []models.Job{}
	if err := db.Order("id").Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	maxSize := 0
	for _, job := range jobs {
		if size := job.TeamSize(); size > maxSize {
			maxSize = size
		}
	}

	largest := make([]models.Job, 0)
	leaderIDs := make([]uint64, 0)
	for _, job := range jobs {
		if job.TeamSize() == maxSize {
			largest = append(largest, job)
			leaderIDs = append(leaderIDs, job.TeamLeaderID)
		}
	}

	leaders := map[uint64]models.Colonist{}
	if len(leaderIDs) > 0 {
		found := []models.Colonist{}
		if err := db.Where("id IN ?", leaderIDs).Find(&found).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to resolve team leaders: %w", err)
		}
		for _, c := range found {
			leaders[c.ID] = c
		}
	}

	reports := make([]TeamReport, len(largest))
	for i, job := range largest {
		report := TeamReport{Job: job, TeamSize: maxSize}
		if leader, ok := leaders[job.TeamLeaderID]; ok {
			report.LeaderName = leader.DisplayName()
			report.LeaderFound = true
		} else {
			report.LeaderName = fmt.Sprintf("%d (not found)", job.TeamLeaderID)
		}
		reports[i] = report
	}
	return reports, maxSize, nil
}
