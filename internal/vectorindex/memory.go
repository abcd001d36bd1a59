package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Memory is an in-process index, selected with VECTOR_BACKEND=memory for local runs.
// contents are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	points []Point
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) EnsureCollection(_ context.Context) error {
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.points = nil
	return nil
}

func (m *Memory) Upsert(_ context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		replaced := false
		for i := range m.points {
			if m.points[i].ID == p.ID {
				m.points[i] = p
				replaced = true
				break
			}
		}

		if !replaced {
			m.points = append(m.points, p)
		}
	}

	return nil
}

func (m *Memory) Search(_ context.Context, vector []float32, limit int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.points))
	for _, p := range m.points {
		matches = append(matches, Match{
			ID:      p.ID,
			Score:   cosine(vector, p.Vector),
			Payload: p.Payload,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

func (m *Memory) Delete(_ context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := m.points[:0]
	for _, p := range m.points {
		if _, ok := drop[p.ID]; !ok {
			kept = append(kept, p)
		}
	}
	m.points = kept

	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// number of stored points
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.points)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}

	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
