package documents

import (
	"context"

	"github.com/hamza49699/physical-ai-textbook/internal/storage"
)

type Lister interface {
	Documents(ctx context.Context, limit int) ([]storage.DocumentSummary, error)
}
