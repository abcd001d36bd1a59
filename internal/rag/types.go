package rag

import (
	"context"
	"errors"
	"time"

	"github.com/hamza49699/physical-ai-textbook/internal/chunker"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
)

var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrInvalidDocument = errors.New("invalid document")
)

const (
	Version = "1.0.0"

	StatusConnected    = "connected"
	StatusDisconnected = "error"

	// chunks.section is VARCHAR(255)
	MaxSectionLength = 255

	DefaultDocumentsLimit = 20
	MaxDocumentsLimit     = 100

	defaultStoreTimeout  = 10 * time.Second
	defaultVectorTimeout = 15 * time.Second
)

// Store is the relational side of the pipeline: chunk metadata and the query log.
type Store interface {
	InsertChunks(ctx context.Context, records []storage.ChunkRecord) error
	InsertSession(ctx context.Context, session storage.Session) error
	Truncate(ctx context.Context) error
	ListDocuments(ctx context.Context, limit int) ([]storage.DocumentSummary, error)
	Ping(ctx context.Context) error
}

type Config struct {
	TopK          int
	Chunking      chunker.Options
	StoreTimeout  time.Duration
	VectorTimeout time.Duration
}

type Answer struct {
	Query      string   `json:"query"`
	Response   string   `json:"response"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// one unit of textbook content submitted for ingestion
type Document struct {
	Title   string
	Chapter int
	Section string
	Content string
}

type IngestResult struct {
	Title             string
	Chapter           int
	Section           string
	ChunksCreated     int
	EmbeddingsCreated int
}

type HealthReport struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	VectorIndex    string `json:"vector_index"`
	EmbeddingModel string `json:"embedding_model"`
	Version        string `json:"version"`
}
