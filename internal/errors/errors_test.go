package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterJSONTagNames()
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		production bool
		category   string
		sanitized  string
	}{
		{"pg error", &pgconn.PgError{Message: "relation missing"}, true, CategoryDatabase, "database operation failed"},
		{"vector index", fmt.Errorf("search: %w", vectorindex.ErrUnavailable), true, CategoryUnavailable, "vector index unavailable"},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true, CategoryTimeout, "request timed out"},
		{"dial", fmt.Errorf("dial tcp 127.0.0.1:5432: connect refused"), true, CategoryNetwork, "connection error occurred"},
		{"unknown", fmt.Errorf("boom"), true, CategoryUnknown, "an error occurred"},
		{"development keeps detail", fmt.Errorf("boom"), false, CategoryUnknown, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.production {
				t.Setenv("ENVIRONMENT", "production")
			} else {
				t.Setenv("ENVIRONMENT", "development")
			}

			info := classifyError(tt.err)

			assert.Equal(t, tt.category, info.category)
			assert.Equal(t, tt.sanitized, info.sanitized)
		})
	}
}

type ingestBody struct {
	Title   string `json:"title" binding:"required"`
	Chapter *int   `json:"chapter" binding:"required,min=0"`
}

func TestValidationErrorListsFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/ingest", nil)

	var body ingestBody
	err := binding.Validator.ValidateStruct(&body)
	require.Error(t, err)

	ValidationError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeValidationError, resp.Error)
	assert.ElementsMatch(t, []string{"title", "chapter"}, resp.Fields)
	assert.Contains(t, resp.Details, "title is required")
}

func TestInternalErrorSanitizesInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/query", nil)

	InternalError(c, "failed to answer query", &pgconn.PgError{Message: "secret table name"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeServerError, resp.Error)
	assert.Equal(t, "failed to answer query", resp.Message)
	assert.Equal(t, "database operation failed", resp.Details)
}

func TestServiceUnavailable(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ServiceUnavailable(c, "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), CodeServiceUnavailable)
}
