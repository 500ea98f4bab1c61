package reports

import (
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// HoursOutcome tells which path DepartmentHours ended on.
type HoursOutcome int

const (
	// HoursFound means the department was found and has members. Members may
	// still be empty when nobody passes the threshold.
	HoursFound HoursOutcome = iota
	HoursDepartmentNotFound
	HoursNoMembers
)

func (o HoursOutcome) String() string {
	switch o {
	case HoursFound:
		return "found"
	case HoursDepartmentNotFound:
		return "department not found"
	case HoursNoMembers:
		return "no members"
	default:
		return fmt.Sprintf("HoursOutcome(%d)", int(o))
	}
}

// HoursQuery locates a department by title keywords and keeps members whose
// finished work exceeds MinHours.
type HoursQuery struct {
	TitleKeywords []string
	MinHours      int
}

// MemberHours is a department member with the hours of finished jobs they led.
type MemberHours struct {
	Colonist models.Colonist
	Hours    int64
}

// DepartmentHoursResult is the outcome of DepartmentHours.
type DepartmentHoursResult struct {
	Outcome    HoursOutcome
	Department *models.Department
	MemberIDs  []uint64
	Members    []MemberHours
}

// DepartmentHours finds the first department, by id, whose title contains
// any keyword case-insensitively, sums the work size of finished jobs led by
// each of its members and returns the members above the threshold in
// department order. Members without a colonist record are skipped.
func DepartmentHours(db *gorm.DB, q HoursQuery) (*DepartmentHoursResult, error) {
	dept, err := findDepartmentByTitle(db, q.TitleKeywords)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return &DepartmentHoursResult{Outcome: HoursDepartmentNotFound, Members: []MemberHours{}}, nil
	}

	result := &DepartmentHoursResult{
		Outcome:    HoursFound,
		Department: dept,
		MemberIDs:  []uint64(dept.Members),
		Members:    []MemberHours{},
	}
	if len(dept.Members) == 0 {
		result.Outcome = HoursNoMembers
		result.MemberIDs = []uint64{}
		return result, nil
	}

	type leaderTotal struct {
		TeamLeader uint64
		Total      int64
	}
	totals := []leaderTotal{}
	err = db.Model(&models.Job{}).
		Select("team_leader, SUM(work_size) AS total").
		Where("team_leader IN ?", []uint64(dept.Members)).
		Where("is_finished = ?", true).
		Group("team_leader").
		Having("SUM(work_size) > ?", q.MinHours).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum job hours: %w", err)
	}
	if len(totals) == 0 {
		return result, nil
	}

	hours := make(map[uint64]int64, len(totals))
	ids := make([]uint64, 0, len(totals))
	for _, t := range totals {
		hours[t.TeamLeader] = t.Total
		ids = append(ids, t.TeamLeader)
	}

	colonists := []models.Colonist{}
	if err := db.Where("id IN ?", ids).Find(&colonists).Error; err != nil {
		return nil, fmt.Errorf("failed to load department members: %w", err)
	}
	byID := make(map[uint64]models.Colonist, len(colonists))
	for _, c := range colonists {
		byID[c.ID] = c
	}

	seen := make(map[uint64]struct{}, len(dept.Members))
	for _, id := range dept.Members {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		c, ok := byID[id]
		if !ok {
			continue
		}
		result.Members = append(result.Members, MemberHours{Colonist: c, Hours: hours[id]})
	}
	return result, nil
}

func findDepartmentByTitle(db *gorm.DB, keywords []string) (*models.Department, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	// Titles are matched in Go because SQL LOWER() only folds ASCII on SQLite.
	departments := []models.Department{}
	if err := db.Order("id").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	for i := range departments {
		title := strings.ToLower(departments[i].Title)
		for _, kw := range lowered {
			if kw != "" && strings.Contains(title, kw) {
				return &departments[i], nil
			}
		}
	}
	return nil, nil
}
