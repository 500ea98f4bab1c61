package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/dto"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

// DepartmentHandler serves the department endpoints.
type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

// ListDepartments returns every department.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.ListDepartments()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": dto.ToDepartmentDTOs(departments)})
}

// GetDepartment returns a department by ID.
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := idParam(c, "department")
	if !ok {
		return
	}

	department, err := h.departmentService.GetDepartment(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// CreateDepartment creates a department.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	type CreateDepartmentRequest struct {
		Title   string          `json:"title" binding:"required"`
		ChiefID *uint64         `json:"chief"`
		Members membershipField `json:"members"`
		Email   *string         `json:"email"`
	}

	if _, ok := currentActor(c); !ok {
		return
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department, err := h.departmentService.CreateDepartment(services.DepartmentInput{
		Title:   req.Title,
		ChiefID: req.ChiefID,
		Members: req.Members.Source,
		Email:   req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*department))
}

// UpdateDepartment updates a department.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	type UpdateDepartmentRequest struct {
		Title      *string         `json:"title"`
		ChiefID    *uint64         `json:"chief"`
		ClearChief bool            `json:"clear_chief"`
		Members    membershipField `json:"members"`
		Email      *string         `json:"email"`
		ClearEmail bool            `json:"clear_email"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "department")
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department, err := h.departmentService.UpdateDepartment(actor, id, services.UpdateDepartmentInput{
		Title:      req.Title,
		ChiefID:    req.ChiefID,
		ClearChief: req.ClearChief,
		Members:    req.Members.Source,
		Email:      req.Email,
		ClearEmail: req.ClearEmail,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// DeleteDepartment removes a department.
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "department")
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
