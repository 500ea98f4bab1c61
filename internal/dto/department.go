package dto

import "github.com/yukikurage/mars-colony-api/internal/models"

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID      uint64              `json:"id"`
	Title   string              `json:"title"`
	ChiefID *uint64             `json:"chief"`
	Chief   *ColonistSummaryDTO `json:"chief_colonist,omitempty"`
	Members []uint64            `json:"members"`
	Email   *string             `json:"email"`
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(department models.Department) DepartmentDTO {
	dto := DepartmentDTO{
		ID:      department.ID,
		Title:   department.Title,
		ChiefID: department.ChiefID,
		Members: append([]uint64{}, department.Members...),
		Email:   department.Email,
	}
	if department.Chief != nil {
		chief := ToColonistSummaryDTO(*department.Chief)
		dto.Chief = &chief
	}
	return dto
}

// ToDepartmentDTOs converts a slice of departments
func ToDepartmentDTOs(departments []models.Department) []DepartmentDTO {
	result := make([]DepartmentDTO, len(departments))
	for i, d := range departments {
		result[i] = ToDepartmentDTO(d)
	}
	return result
}
