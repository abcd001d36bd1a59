package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// returns the combined health of the service; always 200 so the widget can show status
func Handler(checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Health(c.Request.Context()))
	}
}

// probes postgres only
func DatabaseHandler(checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.CheckDatabase(c.Request.Context()); err != nil {
			errors.ServiceUnavailable(c, "PostgreSQL unavailable", err)
			return
		}

		c.JSON(http.StatusOK, DependencyResponse{Status: rag.StatusConnected, Service: "PostgreSQL"})
	}
}

// probes the vector index only
func VectorHandler(checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.CheckVectorIndex(c.Request.Context()); err != nil {
			errors.ServiceUnavailable(c, "vector index unavailable", err)
			return
		}

		c.JSON(http.StatusOK, DependencyResponse{Status: rag.StatusConnected, Service: checker.IndexName()})
	}
}

// describes the api at the root path, including how answers are composed
func IndexHandler(checker Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, IndexResponse{
			Message:    "Physical AI Textbook API",
			Version:    rag.Version,
			AnswerMode: checker.ComposerMode(),
			Features:   []string{"RAG Query", "Document Ingestion", "Lightweight Embeddings"},
			Health:     "/health",
			Endpoints: map[string]string{
				"query":     "POST /query",
				"ingest":    "POST /ingest",
				"reset":     "POST /reset",
				"documents": "GET /documents",
				"health":    "GET /health",
			},
		})
	}
}
