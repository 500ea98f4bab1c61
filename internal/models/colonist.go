package models

import (
	"fmt"
	"strings"
	"time"
)

type Colonist struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Surname        string    `gorm:"type:varchar(255)" json:"surname"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Age            int       `gorm:"not null;check:chk_colonists_age,age >= 0" json:"age"`
	Position       string    `gorm:"type:varchar(255)" json:"position"`
	Speciality     string    `gorm:"type:varchar(255)" json:"speciality"`
	Address        string    `gorm:"type:varchar(255);index" json:"address"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"type:varchar(255)" json:"-"`
	ModifiedDate   time.Time `gorm:"autoUpdateTime" json:"modified_date"`

	// Relations
	LedJobs     []Job        `gorm:"foreignKey:TeamLeaderID" json:"-"`
	Departments []Department `gorm:"foreignKey:ChiefID" json:"-"`
}

func (Colonist) TableName() string {
	return "colonists"
}

// DisplayName is "Surname Name", or just the name when there is no surname.
func (c Colonist) DisplayName() string {
	return strings.TrimSpace(c.Surname + " " + c.Name)
}

func (c Colonist) String() string {
	return fmt.Sprintf("<Colonist> %d %s", c.ID, c.DisplayName())
}
