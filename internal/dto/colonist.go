package dto

import (
	"time"

	"github.com/yukikurage/mars-colony-api/internal/models"
)

// ColonistDTO represents a colonist in API responses
type ColonistDTO struct {
	ID           uint64    `json:"id"`
	Surname      string    `json:"surname"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Position     string    `json:"position"`
	Speciality   string    `json:"speciality"`
	Address      string    `json:"address"`
	Email        string    `json:"email"`
	ModifiedDate time.Time `json:"modified_date"`
}

// ColonistSummaryDTO is the short form used inside other resources
type ColonistSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToColonistDTO converts a Colonist model to ColonistDTO
func ToColonistDTO(colonist models.Colonist) ColonistDTO {
	return ColonistDTO{
		ID:           colonist.ID,
		Surname:      colonist.Surname,
		Name:         colonist.Name,
		Age:          colonist.Age,
		Position:     colonist.Position,
		Speciality:   colonist.Speciality,
		Address:      colonist.Address,
		Email:        colonist.Email,
		ModifiedDate: colonist.ModifiedDate,
	}
}

// ToColonistDTOs converts a slice of colonists
func ToColonistDTOs(colonists []models.Colonist) []ColonistDTO {
	result := make([]ColonistDTO, len(colonists))
	for i, c := range colonists {
		result[i] = ToColonistDTO(c)
	}
	return result
}

// ToColonistSummaryDTO converts a Colonist model to ColonistSummaryDTO
func ToColonistSummaryDTO(colonist models.Colonist) ColonistSummaryDTO {
	return ColonistSummaryDTO{
		ID:   colonist.ID,
		Name: colonist.DisplayName(),
	}
}
