package query

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// QueryHandler godoc
// @Summary Ask the textbook
// @Description Retrieve relevant textbook chunks and compose an answer with citations
// @Tags query
// @Accept json
// @Produce json
// @Param request body QueryRequest true "Question"
// @Success 200 {object} QueryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /query [post]
func QueryHandler(answerer Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		answer, err := answerer.Query(c.Request.Context(), req.Query, req.Chapter)
		if err != nil {
			if stderrors.Is(err, rag.ErrEmptyQuery) {
				errors.BadRequest(c, "query must not be empty", nil)
				return
			}

			errors.InternalError(c, "failed to answer query", err)
			return
		}

		c.JSON(http.StatusOK, QueryResponse{
			Query:      answer.Query,
			Response:   answer.Response,
			Sources:    answer.Sources,
			Confidence: answer.Confidence,
		})
	}
}
