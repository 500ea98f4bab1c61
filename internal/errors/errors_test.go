package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/mars-colony-api/internal/constants"
)

func TestHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		body   string
	}{
		{"default message", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound,
			`{"code":"NOT_FOUND","message":"Record not found"}`},
		{"custom message", func(c *gin.Context) { Forbidden(c, "permission denied") }, http.StatusForbidden,
			`{"code":"FORBIDDEN","message":"permission denied"}`},
		{"in use", func(c *gin.Context) { InUse(c, "") }, http.StatusConflict,
			`{"code":"IN_USE","message":"Record is still in use"}`},
		{"details", func(c *gin.Context) {
			BadRequestWithDetails(c, "age is invalid", []string{"age"})
		}, http.StatusBadRequest, `{"code":"INVALID_INPUT","message":"age is invalid","details":["age"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.call(c)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRespond_IncludesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyRequestID, "req-42")

	ServiceUnavailable(c, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"code":"SERVICE_UNAVAILABLE","message":"Storage is not available","request_id":"req-42"}`, w.Body.String())
}
