package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/hamza49699/physical-ai-textbook/internal/embedder"
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIndex only implements Search; the other methods are no-ops
type fakeIndex struct {
	vectorindex.Memory
	searchFunc func(ctx context.Context, vector []float32, limit int) ([]vectorindex.Match, error)
	calls      int
}

func (f *fakeIndex) Search(ctx context.Context, vector []float32, limit int) ([]vectorindex.Match, error) {
	f.calls++
	return f.searchFunc(ctx, vector, limit)
}

func match(score float64, chapter int, section, content string) vectorindex.Match {
	return vectorindex.Match{
		Score: score,
		Payload: vectorindex.Payload{
			Chapter: chapter,
			Section: section,
			Content: content,
		},
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name           string
		matches        []vectorindex.Match
		wantOutOfScope bool
		wantChunks     int
		wantSources    []string
		wantConfidence float64
	}{
		{
			name:           "no matches",
			matches:        nil,
			wantOutOfScope: true,
			wantSources:    []string{NoMatchSource},
		},
		{
			name: "below threshold",
			matches: []vectorindex.Match{
				match(0.1, 1, "Nodes", "a"),
				match(0.05, 1, "Topics", "b"),
			},
			wantOutOfScope: true,
			wantSources:    []string{NoMatchSource},
		},
		{
			name: "single strong match",
			matches: []vectorindex.Match{
				match(0.8, 2, "Overview", "ROS 2 is middleware"),
			},
			wantChunks:     1,
			wantSources:    []string{"Chapter 2, Section: Overview"},
			wantConfidence: 0.8,
		},
		{
			name: "duplicates skipped but counted",
			matches: []vectorindex.Match{
				match(0.6, 2, "Overview", "same text"),
				match(0.6, 2, "Overview", "  same text  "),
				match(0.3, 3, "Gazebo", "other"),
			},
			wantChunks:     2,
			wantSources:    []string{"Chapter 2, Section: Overview", "Chapter 3, Section: Gazebo"},
			wantConfidence: 0.9 / 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate(tt.matches, DefaultScoreThreshold)

			assert.Equal(t, tt.wantOutOfScope, result.OutOfScope)
			assert.Len(t, result.Chunks, tt.wantChunks)
			assert.Equal(t, tt.wantSources, result.Sources)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			assert.Equal(t, len(tt.matches), result.Considered)
		})
	}
}

func TestAggregateDedupIsIdempotent(t *testing.T) {
	matches := []vectorindex.Match{
		match(0.7, 1, "A", "x"),
		match(0.5, 1, "B", "y"),
	}

	doubled := append(append([]vectorindex.Match{}, matches...), matches...)

	once := Aggregate(matches, DefaultScoreThreshold)
	twice := Aggregate(doubled, DefaultScoreThreshold)

	assert.Equal(t, once.Chunks, twice.Chunks)
	assert.Equal(t, once.Sources, twice.Sources)
}

func TestAggregateClampsConfidence(t *testing.T) {
	result := Aggregate([]vectorindex.Match{match(1.5, 1, "A", "x")}, DefaultScoreThreshold)

	assert.Equal(t, 1.0, result.Confidence)
}

func TestRetrieveZeroVectorSkipsIndex(t *testing.T) {
	idx := &fakeIndex{searchFunc: func(context.Context, []float32, int) ([]vectorindex.Match, error) {
		t.Fatal("index should not be queried")
		return nil, nil
	}}

	r := New(idx, DefaultConfig())

	result, err := r.Retrieve(context.Background(), make([]float32, embedder.Dimension), 0)

	require.NoError(t, err)
	assert.True(t, result.OutOfScope)
	assert.Equal(t, 0, idx.calls)
}

func TestRetrievePassesTopK(t *testing.T) {
	var gotLimit int
	idx := &fakeIndex{searchFunc: func(_ context.Context, _ []float32, limit int) ([]vectorindex.Match, error) {
		gotLimit = limit
		return []vectorindex.Match{match(0.9, 2, "Overview", "text")}, nil
	}}

	r := New(idx, Config{TopK: 7, ScoreThreshold: 0.2})
	vec := embedder.New().Encode("ros 2")

	_, err := r.Retrieve(context.Background(), vec, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, gotLimit)

	_, err = r.Retrieve(context.Background(), vec, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, gotLimit)
}

func TestRetrievePropagatesIndexErrors(t *testing.T) {
	idx := &fakeIndex{searchFunc: func(context.Context, []float32, int) ([]vectorindex.Match, error) {
		return nil, vectorindex.ErrUnavailable
	}}

	r := New(idx, DefaultConfig())

	_, err := r.Retrieve(context.Background(), embedder.New().Encode("ros"), 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, vectorindex.ErrUnavailable))
}

func TestRetrieveEmptyIndexIsOutOfScope(t *testing.T) {
	r := New(vectorindex.NewMemory(), DefaultConfig())

	result, err := r.Retrieve(context.Background(), embedder.New().Encode("banana bread recipe"), 0)

	require.NoError(t, err)
	assert.True(t, result.OutOfScope)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, []string{NoMatchSource}, result.Sources)
}

func TestCitation(t *testing.T) {
	assert.Equal(t, "Chapter 2, Section: Overview", Citation(2, "Overview"))
	assert.Equal(t, "Chapter 0, Section: Introduction", Citation(0, "Introduction"))
}
