package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema and adds the query indexes.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.Colonist{},
		&models.Category{},
		&models.Job{},
		&models.Department{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// AddIndexes adds the indexes used by the report queries
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Colonist cohort filters
		{"colonists", "idx_colonists_address_age", "address, age"},
		{"colonists", "idx_colonists_position", "position"},

		// Job filters and per-leader aggregation
		{"jobs", "idx_jobs_finished_work_size", "is_finished, work_size"},
		{"jobs", "idx_jobs_leader_finished", "team_leader, is_finished"},

		// Category usage guard
		{models.JobCategoryTable, "idx_jobs_to_categories_category_id", "category_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
