package models

import (
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/membership"
)

type Department struct {
	ID      uint64          `gorm:"primarykey" json:"id"`
	Title   string          `gorm:"type:varchar(255);not null" json:"title"`
	ChiefID *uint64         `gorm:"column:chief;index" json:"chief"`
	Members membership.List `json:"members"`
	Email   *string         `gorm:"type:varchar(255);uniqueIndex" json:"email"`

	// Relations
	Chief *Colonist `gorm:"foreignKey:ChiefID" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// IsChief reports whether colonistID heads the department.
func (d Department) IsChief(colonistID uint64) bool {
	return d.ChiefID != nil && *d.ChiefID == colonistID
}

func (d Department) String() string {
	return fmt.Sprintf("<Department> %s", d.Title)
}
