package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	documentsFunc func(ctx context.Context, limit int) ([]storage.DocumentSummary, error)
}

func (f *fakeLister) Documents(ctx context.Context, limit int) ([]storage.DocumentSummary, error) {
	return f.documentsFunc(ctx, limit)
}

func get(lister Lister, query string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, lister)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/documents"+query, nil))
	return w
}

func TestListDocumentsHandler(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"default limit", "", 20},
		{"explicit limit", "?limit=5", 5},
		{"clamped high", "?limit=500", 100},
		{"clamped low", "?limit=0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			w := get(&fakeLister{
				documentsFunc: func(_ context.Context, limit int) ([]storage.DocumentSummary, error) {
					gotLimit = limit
					return []storage.DocumentSummary{
						{ID: 7, Chapter: 1, Section: "Nodes", CreatedAt: created},
					}, nil
				},
			}, tt.query)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, gotLimit)

			var docs []storage.DocumentSummary
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
			require.Len(t, docs, 1)
			assert.Equal(t, "Nodes", docs[0].Section)
		})
	}
}

func TestListDocumentsHandlerInvalidLimit(t *testing.T) {
	w := get(&fakeLister{
		documentsFunc: func(context.Context, int) ([]storage.DocumentSummary, error) {
			t.Fatal("lister should not be called")
			return nil, nil
		},
	}, "?limit=ten")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDocumentsHandlerStoreError(t *testing.T) {
	w := get(&fakeLister{
		documentsFunc: func(context.Context, int) ([]storage.DocumentSummary, error) {
			return nil, fmt.Errorf("list documents: connection refused")
		},
	}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
