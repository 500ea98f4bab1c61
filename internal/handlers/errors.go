package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/database"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/middleware"
	"github.com/yukikurage/mars-colony-api/internal/reports"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"github.com/yukikurage/mars-colony-api/internal/utils"
)

// respondServiceError maps service errors onto API error responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		if details := utils.ValidationDetails(err); details != nil {
			apierrors.BadRequestWithDetails(c, utils.FormatValidationError(err), details)
			return
		}
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicate):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrCategoryInUse):
		apierrors.InUse(c, err.Error())
	case errors.Is(err, reports.ErrRelocationConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, database.ErrUninitializedStorage):
		apierrors.ServiceUnavailable(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// bindError answers a request body that failed to bind.
func bindError(c *gin.Context, err error) {
	if details := utils.ValidationDetails(err); details != nil {
		apierrors.BadRequestWithDetails(c, utils.FormatValidationError(err), details)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// idParam parses the :id route parameter, answering 400 when it is not a
// positive integer.
func idParam(c *gin.Context, what string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+what+" ID")
		return 0, false
	}
	return id, true
}

// currentActor returns the acting colonist, answering 401 when there is none.
func currentActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Actor{}, false
	}
	return actor, true
}
