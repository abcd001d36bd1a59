package health

import (
	"context"

	"github.com/hamza49699/physical-ai-textbook/internal/rag"
)

type Checker interface {
	Health(ctx context.Context) rag.HealthReport
	CheckDatabase(ctx context.Context) error
	CheckVectorIndex(ctx context.Context) error
	IndexName() string
	ComposerMode() string
}

// DependencyResponse is returned by the single-dependency probes
type DependencyResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// IndexResponse describes the service at GET /
type IndexResponse struct {
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	AnswerMode string            `json:"answer_mode"`
	Features   []string          `json:"features"`
	Health     string            `json:"health"`
	Endpoints  map[string]string `json:"endpoints"`
}
