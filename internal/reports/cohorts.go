// Package reports implements the analytical and maintenance queries over
// colonists, jobs and departments. Every function takes an open session and
// treats an empty result as a valid answer, never as an error.
package reports

import (
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// AgedColonist pairs a colonist with the age the query filtered on.
type AgedColonist struct {
	Colonist models.Colonist
	Age      int
}

// containsPattern builds a lower-case LIKE pattern matching s anywhere.
// Wildcards in s are escaped with '!'.
func containsPattern(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// ilike is a case-insensitive substring predicate over column. NULL is
// treated as the empty string so negations behave.
func ilike(column string) string {
	return fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '!'`, column)
}

// ColonistsInModule returns colonists whose address equals module.
func ColonistsInModule(db *gorm.DB, module string) ([]models.Colonist, error) {
	colonists := []models.Colonist{}
	if err := db.Where("address = ?", module).Order("id").Find(&colonists).Error; err != nil {
		return nil, fmt.Errorf("failed to list colonists in %s: %w", module, err)
	}
	return colonists, nil
}

// IDsWithoutKeyword returns the ids of colonists in module whose speciality
// and position both lack keyword, compared case-insensitively.
func IDsWithoutKeyword(db *gorm.DB, module, keyword string) ([]uint64, error) {
	pattern := containsPattern(keyword)
	ids := []uint64{}
	err := db.Model(&models.Colonist{}).
		Where("address = ?", module).
		Where(fmt.Sprintf("NOT (%s OR %s)", ilike("speciality"), ilike("position")), pattern, pattern).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list colonists without %q: %w", keyword, err)
	}
	return ids, nil
}

// ColonistsYoungerThan returns colonists with age strictly below age.
func ColonistsYoungerThan(db *gorm.DB, age int) ([]AgedColonist, error) {
	colonists := []models.Colonist{}
	if err := db.Where("age < ?", age).Order("id").Find(&colonists).Error; err != nil {
		return nil, fmt.Errorf("failed to list colonists younger than %d: %w", age, err)
	}

	result := make([]AgedColonist, len(colonists))
	for i, c := range colonists {
		result[i] = AgedColonist{Colonist: c, Age: c.Age}
	}
	return result, nil
}

// ColonistsWithPositionKeywords returns colonists whose position contains
// any of keywords, case-insensitively.
func ColonistsWithPositionKeywords(db *gorm.DB, keywords ...string) ([]models.Colonist, error) {
	colonists := []models.Colonist{}
	if len(keywords) == 0 {
		return colonists, nil
	}

	clauses := make([]string, len(keywords))
	args := make([]any, len(keywords))
	for i, kw := range keywords {
		clauses[i] = ilike("position")
		args[i] = containsPattern(kw)
	}

	err := db.Where(strings.Join(clauses, " OR "), args...).Order("id").Find(&colonists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list colonists by position: %w", err)
	}
	return colonists, nil
}

// ShortUnfinishedJobs returns unfinished jobs needing fewer than maxHours.
func ShortUnfinishedJobs(db *gorm.DB, maxHours int) ([]models.Job, error) {
	jobs := []models.Job{}
	err := db.Where("work_size < ?", maxHours).
		Where("is_finished = ?", false).
		Order("id").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list short unfinished jobs: %w", err)
	}
	return jobs, nil
}
