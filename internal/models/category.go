package models

import "fmt"

// JobCategoryTable is the association table between jobs and categories.
const JobCategoryTable = "jobs_to_categories"

type Category struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relations
	Jobs []Job `gorm:"many2many:jobs_to_categories;" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) String() string {
	return fmt.Sprintf("<Category> %d %s", c.ID, c.Name)
}
