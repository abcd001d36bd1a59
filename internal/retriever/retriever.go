package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/hamza49699/physical-ai-textbook/internal/embedder"
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
)

func New(index vectorindex.Index, cfg Config) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	if cfg.ScoreThreshold < 0 {
		cfg.ScoreThreshold = DefaultScoreThreshold
	}

	return &Retriever{
		index:     index,
		topK:      cfg.TopK,
		threshold: cfg.ScoreThreshold,
	}
}

// Retrieve searches the index for the topK nearest chunks and aggregates them.
// a zero vector never reaches the index and is reported out of scope.
// index errors are returned as-is.
func (r *Retriever) Retrieve(ctx context.Context, vector []float32, topK int) (*Result, error) {
	if topK <= 0 {
		topK = r.topK
	}

	if embedder.IsZero(vector) {
		return outOfScope(0, 0), nil
	}

	matches, err := r.index.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return Aggregate(matches, r.threshold), nil
}

// Aggregate dedups matches by trimmed content, builds citations and decides scope.
// matches are expected in descending score order.
func Aggregate(matches []vectorindex.Match, threshold float64) *Result {
	seen := make(map[string]struct{}, len(matches))
	result := &Result{Considered: len(matches)}

	for _, m := range matches {
		content := strings.TrimSpace(m.Payload.Content)
		if _, dup := seen[content]; dup {
			continue
		}
		seen[content] = struct{}{}

		citation := Citation(m.Payload.Chapter, m.Payload.Section)

		result.Chunks = append(result.Chunks, Chunk{
			Content:  content,
			Score:    m.Score,
			Chapter:  m.Payload.Chapter,
			Section:  m.Payload.Section,
			Citation: citation,
		})
		result.Sources = append(result.Sources, citation)
		result.TotalScore += m.Score
	}

	if len(result.Chunks) == 0 || result.TotalScore < threshold {
		return outOfScope(result.TotalScore, result.Considered)
	}

	result.Confidence = clamp(result.TotalScore/float64(result.Considered), 0, 1)

	return result
}

func outOfScope(total float64, considered int) *Result {
	return &Result{
		Sources:    []string{NoMatchSource},
		TotalScore: total,
		Considered: considered,
		OutOfScope: true,
	}
}
