// Package index holds the immutable vector index over searchable documents.
//
// An Index is built once from a document set and never mutated; a catalog refresh
// builds a new Index and the caller swaps it in whole.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/domain/document"
)

// Hit is a nearest-neighbor match: a document position and its cosine similarity.
type Hit struct {
	Position int
	Score    float64
}

// Store is a vector storage backend. Vectors passed in are already L2-normalized and
// positions are assigned in insertion order.
type Store interface {
	Add(ctx context.Context, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)
	Len() int
}

// Index pairs document metadata with their vectors, order-preserving.
type Index struct {
	docs  []document.Document
	store Store
	dims  int
}

// New assembles an Index from documents and their raw vectors.
// Vectors are normalized before they reach the store.
func New(ctx context.Context, docs []document.Document, vectors [][]float32, store Store) (*Index, error) {
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("%w: %d vectors for %d documents", domain.ErrVectorDimMismatch, len(vectors), len(docs))
	}

	dims := 0
	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		if i == 0 {
			dims = len(v)
		}
		if len(v) == 0 || len(v) != dims {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				domain.ErrVectorDimMismatch, i, len(v), dims)
		}
		normalized[i] = Normalize(v)
	}

	if len(normalized) > 0 {
		if err := store.Add(ctx, normalized); err != nil {
			return nil, fmt.Errorf("store vectors: %w", err)
		}
	}

	return &Index{docs: docs, store: store, dims: dims}, nil
}

// Len returns the number of indexed documents.
func (i *Index) Len() int { return len(i.docs) }

// Dimensions returns the vector dimensionality, 0 for an empty index.
func (i *Index) Dimensions() int { return i.dims }

// Document returns the document at position pos.
func (i *Index) Document(pos int) *document.Document { return &i.docs[pos] }

// Query returns the k nearest documents to vector by cosine similarity, best first.
// k is clamped to the document count; ties keep document order.
func (i *Index) Query(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if k > len(i.docs) {
		k = len(i.docs)
	}
	if k <= 0 {
		return nil, nil
	}
	if len(vector) != i.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrVectorDimMismatch, len(vector), i.dims)
	}

	hits, err := i.store.Search(ctx, Normalize(vector), k)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}
	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Normalize returns an L2-normalized copy of v. A zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		copy(out, v)
		return out
	}
	inv := 1 / math.Sqrt(sum)
	for j, x := range v {
		out[j] = float32(float64(x) * inv)
	}
	return out
}

// sortHits orders by score descending, then by position ascending.
func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Position < hits[b].Position
	})
}
