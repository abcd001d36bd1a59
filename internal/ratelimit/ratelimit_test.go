package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()

	l, err := New(context.Background(), rate, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	assert.Equal(t, "memory", l.Backend())

	router := gin.New()
	router.POST("/query", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	router := newRouter(t, "2-M")

	codes := make([]int, 0, 3)
	for n := 0; n < 3; n++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMiddlewareTracksClientsSeparately(t *testing.T) {
	router := newRouter(t, "1-M")

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestNewRejectsBadRate(t *testing.T) {
	_, err := New(context.Background(), "sixty per minute", "")

	assert.Error(t, err)
}

func TestNewRejectsBadRedisURL(t *testing.T) {
	_, err := New(context.Background(), "60-M", "not-a-redis-url")

	assert.Error(t, err)
}
