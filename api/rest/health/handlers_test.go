package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	dbErr     error
	vectorErr error
}

func (f *fakeChecker) Health(context.Context) rag.HealthReport {
	report := rag.HealthReport{
		Status:         "ok",
		Database:       rag.StatusConnected,
		VectorIndex:    rag.StatusConnected,
		EmbeddingModel: "hash-384",
		Version:        rag.Version,
	}
	if f.dbErr != nil {
		report.Status = "degraded"
		report.Database = rag.StatusDisconnected
	}
	if f.vectorErr != nil {
		report.Status = "degraded"
		report.VectorIndex = rag.StatusDisconnected
	}
	return report
}

func (f *fakeChecker) CheckDatabase(context.Context) error { return f.dbErr }
func (f *fakeChecker) CheckVectorIndex(context.Context) error { return f.vectorErr }
func (f *fakeChecker) IndexName() string { return "qdrant" }
func (f *fakeChecker) ComposerMode() string { return "excerpt" }

func serve(checker Checker, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", IndexHandler(checker))
	RegisterRoutes(router, checker)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthAlwaysOK(t *testing.T) {
	down := fmt.Errorf("connection refused")

	tests := []struct {
		name       string
		checker    *fakeChecker
		wantStatus string
	}{
		{"all up", &fakeChecker{}, "ok"},
		{"db down", &fakeChecker{dbErr: down}, "degraded"},
		{"vector down", &fakeChecker{vectorErr: down}, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.checker, "/health")

			require.Equal(t, http.StatusOK, w.Code)

			var report rag.HealthReport
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, rag.Version, report.Version)
		})
	}
}

func TestDependencyProbes(t *testing.T) {
	down := fmt.Errorf("dial tcp: connection refused")

	tests := []struct {
		name     string
		path     string
		checker  *fakeChecker
		wantCode int
	}{
		{"db up", "/health/db", &fakeChecker{}, http.StatusOK},
		{"db down", "/health/db", &fakeChecker{dbErr: down}, http.StatusServiceUnavailable},
		{"vector up", "/health/vector", &fakeChecker{}, http.StatusOK},
		{"vector down", "/health/vector", &fakeChecker{vectorErr: down}, http.StatusServiceUnavailable},
		{"qdrant alias", "/health/qdrant", &fakeChecker{vectorErr: down}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.checker, tt.path)

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusServiceUnavailable {
				var resp errors.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, errors.CodeServiceUnavailable, resp.Error)
				return
			}

			var resp DependencyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, rag.StatusConnected, resp.Status)
		})
	}
}

func TestIndexHandler(t *testing.T) {
	w := serve(&fakeChecker{}, "/")

	require.Equal(t, http.StatusOK, w.Code)

	var resp IndexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Physical AI Textbook API", resp.Message)
	assert.Equal(t, rag.Version, resp.Version)
	assert.Equal(t, "excerpt", resp.AnswerMode)
	assert.Contains(t, resp.Endpoints, "query")
}
