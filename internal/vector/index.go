// Package vector provides the in-process similarity index over player
// documents.
package vector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrDimensionMismatch indicates a query/index dimension mismatch.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Entry represents a vector to be indexed.
type Entry struct {
	ID       uuid.UUID
	Vector   []float32
	Metadata map[string]interface{}
}

// Result represents a search result.
type Result struct {
	ID       uuid.UUID
	Distance float32
	Score    float32 // 1 - distance for cosine
	Metadata map[string]interface{}
}

// Adapter defines the interface for vector similarity search.
type Adapter interface {
	// Search finds the k nearest neighbors to the query vector.
	Search(ctx context.Context, query []float32, k int) ([]Result, error)

	// ReplaceAll atomically swaps the whole index contents. Readers observe
	// either the previous generation or the new one, never a partial build.
	ReplaceAll(ctx context.Context, entries []Entry) error

	// All returns every indexed entry's metadata in insertion order.
	All(ctx context.Context) ([]map[string]interface{}, error)

	// Count returns the number of vectors in the index.
	Count(ctx context.Context) (int64, error)

	// Close releases resources.
	Close() error
}

// MemoryIndex is an in-memory cosine-similarity index. It holds one
// generation of entries at a time; ReplaceAll builds the next generation off
// to the side and swaps it in under the write lock.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	entries   []Entry
}

// NewMemoryIndex creates an empty in-memory index. A positive dimension is
// enforced on every write and query; zero accepts vectors of any length.
func NewMemoryIndex(dimension int) *MemoryIndex {
	return &MemoryIndex{dimension: dimension}
}

// Search finds the k nearest neighbors using cosine similarity. An empty
// index returns no results, not an error.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dimension > 0 && len(query) != m.dimension {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 || len(m.entries) == 0 || len(query) == 0 {
		return nil, nil
	}

	type scored struct {
		idx      int
		distance float32
	}
	results := make([]scored, 0, len(m.entries))
	for i, e := range m.entries {
		if len(e.Vector) != len(query) {
			continue
		}
		results = append(results, scored{idx: i, distance: cosineDistance(query, e.Vector)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})

	if k > len(results) {
		k = len(results)
	}
	out := make([]Result, k)
	for i := 0; i < k; i++ {
		e := m.entries[results[i].idx]
		out[i] = Result{
			ID:       e.ID,
			Distance: results[i].distance,
			Score:    1 - results[i].distance,
			Metadata: e.Metadata,
		}
	}
	return out, nil
}

// ReplaceAll swaps in a new generation of entries.
func (m *MemoryIndex) ReplaceAll(ctx context.Context, entries []Entry) error {
	if m.dimension > 0 {
		for _, e := range entries {
			if len(e.Vector) != m.dimension {
				return fmt.Errorf("entry %s has dimension %d, index wants %d: %w",
					e.ID, len(e.Vector), m.dimension, ErrDimensionMismatch)
			}
		}
	}

	next := make([]Entry, len(entries))
	copy(next, entries)

	m.mu.Lock()
	m.entries = next
	m.mu.Unlock()
	return nil
}

// All returns every entry's metadata in insertion order.
func (m *MemoryIndex) All(ctx context.Context) ([]map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]map[string]interface{}, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Metadata
	}
	return out, nil
}

// Count returns the number of indexed vectors.
func (m *MemoryIndex) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries)), nil
}

// Close is a no-op for the memory index.
func (m *MemoryIndex) Close() error {
	return nil
}

// cosineDistance computes 1 - cosine similarity. Zero vectors are treated as
// maximally distant.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return float32(1 - sim)
}
