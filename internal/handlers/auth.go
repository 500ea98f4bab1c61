package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	"github.com/yukikurage/mars-colony-api/internal/dto"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/middleware"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a colonist account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Surname    string `json:"surname"`
		Name       string `json:"name" binding:"required"`
		Age        int    `json:"age"`
		Position   string `json:"position"`
		Speciality string `json:"speciality"`
		Address    string `json:"address"`
		Email      string `json:"email" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	colonist, err := h.authService.Register(services.RegisterInput{
		Surname:    req.Surname,
		Name:       req.Name,
		Age:        req.Age,
		Position:   req.Position,
		Speciality: req.Speciality,
		Address:    req.Address,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColonistDTO(*colonist))
}

// Login authenticates a colonist and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	colonist, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, colonist.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToColonistDTO(*colonist))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentColonist returns the authenticated colonist.
func (h *AuthHandler) GetCurrentColonist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	colonist, err := h.authService.GetColonist(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColonistDTO(*colonist))
}

// GetColonist returns a colonist by ID.
func (h *AuthHandler) GetColonist(c *gin.Context) {
	id, ok := idParam(c, "colonist")
	if !ok {
		return
	}

	colonist, err := h.authService.GetColonist(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColonistDTO(*colonist))
}

// UpdateColonist changes a colonist's profile.
func (h *AuthHandler) UpdateColonist(c *gin.Context) {
	type UpdateColonistRequest struct {
		Surname    *string `json:"surname"`
		Name       *string `json:"name"`
		Age        *int    `json:"age"`
		Position   *string `json:"position"`
		Speciality *string `json:"speciality"`
		Address    *string `json:"address"`
		Email      *string `json:"email"`
		Password   *string `json:"password"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "colonist")
	if !ok {
		return
	}

	var req UpdateColonistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	colonist, err := h.authService.UpdateProfile(actor, id, services.UpdateProfileInput{
		Surname:    req.Surname,
		Name:       req.Name,
		Age:        req.Age,
		Position:   req.Position,
		Speciality: req.Speciality,
		Address:    req.Address,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColonistDTO(*colonist))
}
