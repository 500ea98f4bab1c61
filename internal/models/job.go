package models

import (
	"fmt"
	"time"

	"github.com/yukikurage/mars-colony-api/internal/membership"
	"gorm.io/gorm"
)

type Job struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	TeamLeaderID  uint64          `gorm:"column:team_leader;not null;index" json:"team_leader"`
	Description   string          `gorm:"column:job;type:text;not null" json:"job"`
	WorkSize      int             `gorm:"not null;default:0;check:chk_jobs_work_size,work_size >= 0" json:"work_size"`
	Collaborators membership.List `json:"collaborators"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	IsFinished    bool            `gorm:"not null;default:false" json:"is_finished"`

	// Relations
	Leader     Colonist   `gorm:"foreignKey:TeamLeaderID" json:"-"`
	Categories []Category `gorm:"many2many:jobs_to_categories;" json:"categories,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate sets the start date to the creation time when unset.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.StartDate.IsZero() {
		j.StartDate = time.Now().UTC()
	}
	if j.Collaborators == nil {
		j.Collaborators = membership.List{}
	}
	return nil
}

// TeamSize is the number of collaborators.
func (j Job) TeamSize() int {
	return j.Collaborators.Len()
}

func (j Job) String() string {
	return fmt.Sprintf("<Job> %s", j.Description)
}
