package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hyperjump/finsight/pkg/utils"
)

// MemoryCollection is an in-process collection using brute-force cosine search over
// L2-normalized vectors. Suitable for tests and single-process deployments.
type MemoryCollection struct {
	name       string
	dimensions int
	created    bool
	order      []string
	points     map[string]Point
	mu         sync.RWMutex
}

// NewMemoryCollection creates an in-memory collection. It must be ensured before use.
func NewMemoryCollection(name string, dimensions int) (*MemoryCollection, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryCollection{
		name:       name,
		dimensions: dimensions,
		points:     make(map[string]Point),
	}, nil
}

// EnsureCollection marks the collection as created; existing points are kept.
func (m *MemoryCollection) EnsureCollection(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = true
	return nil
}

// Upsert stores copies of the points, replacing points with the same ID.
func (m *MemoryCollection) Upsert(ctx context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		return fmt.Errorf("%s: %w", m.name, ErrCollectionNotFound)
	}
	for _, p := range points {
		if len(p.Vector) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(p.Vector), m.dimensions)
		}
	}
	for _, p := range points {
		vec := make([]float32, m.dimensions)
		copy(vec, p.Vector)
		utils.NormalizeL2(vec)
		payload := make(map[string]string, len(p.Payload))
		for k, v := range p.Payload {
			payload[k] = v
		}
		if _, ok := m.points[p.ID]; !ok {
			m.order = append(m.order, p.ID)
		}
		m.points[p.ID] = Point{ID: p.ID, Vector: vec, Payload: payload}
	}
	return nil
}

// Search returns the top matches by cosine similarity among points passing the filter.
func (m *MemoryCollection) Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error) {
	if len(req.Vector) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(req.Vector), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return nil, fmt.Errorf("%s: %w", m.name, ErrCollectionNotFound)
	}
	if req.Limit <= 0 {
		return nil, nil
	}
	query := make([]float32, m.dimensions)
	copy(query, req.Vector)
	utils.NormalizeL2(query)

	results := make([]ScoredPoint, 0, len(m.order))
	for _, id := range m.order {
		p := m.points[id]
		if !req.Filter.Matches(p.Payload) {
			continue
		}
		results = append(results, ScoredPoint{ID: id, Score: dot(query, p.Vector), Payload: p.Payload})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if req.Limit < len(results) {
		results = results[:req.Limit]
	}
	return results, nil
}

// Count returns the number of points in the collection.
func (m *MemoryCollection) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return 0, fmt.Errorf("%s: %w", m.name, ErrCollectionNotFound)
	}
	return len(m.points), nil
}

// Dimensions returns the vector size.
func (m *MemoryCollection) Dimensions() int {
	return m.dimensions
}

// Close is a no-op for MemoryCollection.
func (m *MemoryCollection) Close() error {
	return nil
}
