package query

import (
	"context"

	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// answers questions against the textbook index
type Answerer interface {
	Query(ctx context.Context, query string, chapter *int) (*rag.Answer, error)
}

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Query   string `json:"query" binding:"required"`
	Chapter *int   `json:"chapter,omitempty" binding:"omitempty,min=0"`
}

// QueryResponse is the answer returned to the chat widget
type QueryResponse struct {
	Query      string   `json:"query"`
	Response   string   `json:"response"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}
