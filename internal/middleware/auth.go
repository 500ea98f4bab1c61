package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

// RequireAuth checks if the colonist is authenticated via session and
// resolves the acting colonist's privileges
func RequireAuth(privileges *services.Privileges) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)

		id, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "Invalid session")
			c.Abort()
			return
		}
		c.Set(constants.ContextKeyActor, privileges.Actor(id))
		c.Next()
	}
}

// GetUserID retrieves the current colonist ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		// JSON-backed session stores decode numbers as float64.
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor retrieves the acting colonist from context
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}
