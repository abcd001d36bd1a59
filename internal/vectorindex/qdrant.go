package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultQdrantTimeout = 15 * time.Second

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

// Qdrant talks to the qdrant REST api. collections use cosine distance.
type Qdrant struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

func NewQdrant(cfg QdrantConfig) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultQdrantTimeout
	}

	return &Qdrant{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
	}
}

func (q *Qdrant) Name() string {
	return "qdrant"
}

type qdrantPoint struct {
	ID      int64     `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload Payload   `json:"payload"`
}

type qdrantSearchResponse struct {
	Result []struct {
		ID      int64   `json:"id"`
		Score   float64 `json:"score"`
		Payload Payload `json:"payload"`
	} `json:"result"`
}

func (q *Qdrant) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", q.url, q.collection)
}

func (q *Qdrant) EnsureCollection(ctx context.Context) error {
	status, err := q.do(ctx, http.MethodGet, q.collectionURL(), nil, nil)
	if err == nil {
		return nil
	}

	if status != http.StatusNotFound {
		return err
	}

	return q.create(ctx)
}

func (q *Qdrant) create(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     q.dimension,
			"distance": "Cosine",
		},
	}

	if _, err := q.do(ctx, http.MethodPut, q.collectionURL(), body, nil); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", q.collection, err)
	}

	return nil
}

func (q *Qdrant) Reset(ctx context.Context) error {
	status, err := q.do(ctx, http.MethodDelete, q.collectionURL(), nil, nil)
	if err != nil && status != http.StatusNotFound {
		return fmt.Errorf("failed to delete collection %s: %w", q.collection, err)
	}

	return q.create(ctx)
}

func (q *Qdrant) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	body := struct {
		Points []qdrantPoint `json:"points"`
	}{Points: make([]qdrantPoint, len(points))}

	for i, p := range points {
		body.Points[i] = qdrantPoint{ID: p.ID, Vector: p.Vector, Payload: p.Payload}
	}

	if _, err := q.do(ctx, http.MethodPut, q.collectionURL()+"/points?wait=true", body, nil); err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}

	return nil
}

func (q *Qdrant) Search(ctx context.Context, vector []float32, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var resp qdrantSearchResponse

	status, err := q.do(ctx, http.MethodPost, q.collectionURL()+"/points/search", req, &resp)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	matches := make([]Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, Match{ID: r.ID, Score: r.Score, Payload: r.Payload})
	}

	return matches, nil
}

func (q *Qdrant) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	body := map[string]any{"points": ids}

	if _, err := q.do(ctx, http.MethodPost, q.collectionURL()+"/points/delete?wait=true", body, nil); err != nil {
		return fmt.Errorf("failed to delete %d points: %w", len(ids), err)
	}

	return nil
}

func (q *Qdrant) Ping(ctx context.Context) error {
	if _, err := q.do(ctx, http.MethodGet, q.url+"/collections", nil, nil); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// sends a json request and decodes the response into out when non-nil.
// returns the http status (0 on transport failure) alongside any error.
func (q *Qdrant) do(ctx context.Context, method, url string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("%w: %s %s returned %d: %s",
			ErrUnavailable, method, url, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
