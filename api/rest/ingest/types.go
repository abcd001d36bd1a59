package ingest

import (
	"context"

	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

// writes to and clears the knowledge base
type Ingester interface {
	Ingest(ctx context.Context, doc rag.Document) (*rag.IngestResult, error)
	Reset(ctx context.Context) error
}

// IngestRequest is the body of POST /ingest
type IngestRequest struct {
	Title   string `json:"title" binding:"required"`
	Chapter *int   `json:"chapter" binding:"required,min=0"`
	Section string `json:"section" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// IngestResponse reports what was indexed
type IngestResponse struct {
	Status            string `json:"status"`
	Title             string `json:"title"`
	Chapter           int    `json:"chapter"`
	Section           string `json:"section"`
	ChunksCreated     int    `json:"chunks_created"`
	EmbeddingsCreated int    `json:"embeddings_created"`
	Message           string `json:"message"`
}

// ResetResponse for POST /reset
type ResetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
