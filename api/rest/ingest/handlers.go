package ingest

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// IngestHandler godoc
// @Summary Ingest textbook content
// @Description Chunk, embed and index a section of the textbook
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body IngestRequest true "Document"
// @Success 200 {object} IngestResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ingest [post]
func IngestHandler(ingester Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		result, err := ingester.Ingest(c.Request.Context(), rag.Document{
			Title:   req.Title,
			Chapter: *req.Chapter,
			Section: req.Section,
			Content: req.Content,
		})
		if err != nil {
			if stderrors.Is(err, rag.ErrInvalidDocument) {
				errors.BadRequest(c, "invalid document", err)
				return
			}

			errors.InternalError(c, "failed to ingest document", err)
			return
		}

		c.JSON(http.StatusOK, IngestResponse{
			Status:            "success",
			Title:             result.Title,
			Chapter:           result.Chapter,
			Section:           result.Section,
			ChunksCreated:     result.ChunksCreated,
			EmbeddingsCreated: result.EmbeddingsCreated,
			Message:           fmt.Sprintf("Successfully ingested %d chunks", result.ChunksCreated),
		})
	}
}

// ResetHandler godoc
// @Summary Reset the knowledge base
// @Description Recreate the vector collection and empty chunks and chat sessions
// @Tags ingest
// @Produce json
// @Success 200 {object} ResetResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reset [post]
func ResetHandler(ingester Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ingester.Reset(c.Request.Context()); err != nil {
			errors.InternalError(c, "failed to reset knowledge base", err)
			return
		}

		c.JSON(http.StatusOK, ResetResponse{
			Status:  "success",
			Message: "Vector collection recreated and tables cleared",
		})
	}
}
