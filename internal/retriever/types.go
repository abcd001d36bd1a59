package retriever

import (
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
)

type Retriever struct {
	index     vectorindex.Index
	topK      int
	threshold float64
}

// one accepted match
type Chunk struct {
	Content  string
	Score    float64
	Chapter  int
	Section  string
	Citation string
}

// Result is the aggregated outcome of one retrieval.
// when OutOfScope is set, Chunks is empty, Confidence is 0 and Sources holds NoMatchSource.
type Result struct {
	Chunks     []Chunk
	Sources    []string
	TotalScore float64
	Considered int
	Confidence float64
	OutOfScope bool
}
