package vectorindex

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// returned (wrapped) when the backing index cannot be reached or rejects a request
var ErrUnavailable = errors.New("vector index unavailable")

// Index stores chunk vectors and answers nearest-neighbour queries by cosine similarity.
type Index interface {
	// creates the collection if it does not exist
	EnsureCollection(ctx context.Context) error
	// drops and recreates the collection empty
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, points []Point) error
	// returns up to limit matches ordered by descending score.
	// a missing collection yields no matches.
	Search(ctx context.Context, vector []float32, limit int) ([]Match, error)
	Delete(ctx context.Context, ids []int64) error
	Ping(ctx context.Context) error
	Name() string
}

type Payload struct {
	EmbeddingID string `json:"embedding_id"`
	Chapter     int    `json:"chapter"`
	Section     string `json:"section"`
	Content     string `json:"content"`
	ChunkIndex  int    `json:"chunk_index"`
	Source      string `json:"source"`
}

type Point struct {
	ID      int64
	Vector  []float32
	Payload Payload
}

type Match struct {
	ID      int64
	Score   float64
	Payload Payload
}

// derives a point id from a fresh uuid, reduced to the positive int32 range
func NewPointID() int64 {
	return int64(uuid.New().ID() & 0x7fffffff)
}
