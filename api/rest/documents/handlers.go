package documents

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/api/rest/pagination"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// ListDocumentsHandler godoc
// @Summary List ingested documents
// @Description Distinct chapter/section pairs, most recently ingested first
// @Tags documents
// @Produce json
// @Param limit query int false "Max results (1-100)" default(20)
// @Success 200 {array} storage.DocumentSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents [get]
func ListDocumentsHandler(lister Lister) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := pagination.FromQuery(c, rag.DefaultDocumentsLimit, rag.MaxDocumentsLimit)
		if err != nil {
			errors.BadRequest(c, "invalid limit", err)
			return
		}

		docs, err := lister.Documents(c.Request.Context(), params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list documents", err)
			return
		}

		c.JSON(http.StatusOK, docs)
	}
}
