package utils

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"?page=0&limit=1000", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=abc", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/jobs"+tt.query, nil)
		assert.Equal(t, tt.want, GetPaginationParams(c), tt.query)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestValidationDetails(t *testing.T) {
	type input struct {
		TeamLeaderID uint64 `validate:"required"`
		Email        string `validate:"required,email"`
		Age          int    `validate:"lte=120"`
	}
	err := validator.New().Struct(input{Email: "nope", Age: 130})
	require.Error(t, err)

	wrapped := fmt.Errorf("invalid input: %w", err)
	details := ValidationDetails(wrapped)
	require.Len(t, details, 3)
	assert.Equal(t, FieldError{Field: "team_leader", Message: "team_leader is required"}, details[0])
	assert.Equal(t, "email must be a valid email", details[1].Message)
	assert.Equal(t, "age must be 120 or less", details[2].Message)

	assert.Equal(t, "team_leader is required; email must be a valid email; age must be 120 or less", FormatValidationError(wrapped))
}

func TestValidationDetails_NotValidation(t *testing.T) {
	err := errors.New("boom")
	assert.Nil(t, ValidationDetails(err))
	assert.Equal(t, "boom", FormatValidationError(err))
}
