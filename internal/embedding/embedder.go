// Package embedding provides embedding generation for player documents and
// queries.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embedder turns text into fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Local is a deterministic, dependency-free embedder: a hashed bag-of-words
// projection, L2-normalized. It stands in for a hosted embedding model the
// same way chroma's bundled default embedding function does, and keeps the
// engine answering when no embedding API is configured.
type Local struct {
	dimension int
}

// NewLocal creates a local embedder with the given dimension.
func NewLocal(dimension int) *Local {
	if dimension <= 0 {
		dimension = 256
	}
	return &Local{dimension: dimension}
}

// Dimension returns the embedder's output dimension.
func (l *Local) Dimension() int {
	return l.dimension
}

// Embed generates embeddings for the given texts.
func (l *Local) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = l.embed(t)
	}
	return out, nil
}

// EmbedSingle generates an embedding for a single text.
func (l *Local) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return l.embed(text), nil
}

func (l *Local) embed(text string) []float32 {
	vec := make([]float32, l.dimension)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()
		// Low bits pick the bucket, the next bit picks the sign, so
		// unrelated tokens cancel rather than pile up.
		bucket := int(sum % uint32(l.dimension))
		if (sum>>16)&1 == 0 {
			vec[bucket]++
		} else {
			vec[bucket]--
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

// tokenize lowercases and splits on non-alphanumerics.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
