package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

// RequireJob loads the job named by the :id parameter into the context
func RequireJob(jobs *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid job ID")
			c.Abort()
			return
		}

		job, err := jobs.GetJob(jobID)
		if err != nil {
			if errors.Is(err, services.ErrJobNotFound) {
				apierrors.NotFound(c, "Job not found")
			} else {
				apierrors.InternalError(c, "Failed to load job")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyJob, *job)
		c.Next()
	}
}

// GetJob retrieves the job loaded by RequireJob
func GetJob(c *gin.Context) (models.Job, bool) {
	value, exists := c.Get(constants.ContextKeyJob)
	if !exists {
		return models.Job{}, false
	}
	job, ok := value.(models.Job)
	return job, ok
}
