package index

import (
	"container/heap"
	"context"
)

// FlatStore is an exhaustive inner-product store. With normalized vectors the inner
// product equals cosine similarity.
type FlatStore struct {
	vectors [][]float32
}

var _ Store = (*FlatStore)(nil)

// NewFlatStore creates an empty flat store.
func NewFlatStore() *FlatStore {
	return &FlatStore{}
}

// Add appends vectors.
func (s *FlatStore) Add(_ context.Context, vectors [][]float32) error {
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Len returns the number of stored vectors.
func (s *FlatStore) Len() int { return len(s.vectors) }

// Search scans every vector and keeps the k best in a min-heap.
func (s *FlatStore) Search(_ context.Context, query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	h := make(hitHeap, 0, k)
	for pos, v := range s.vectors {
		hit := Hit{Position: pos, Score: dot(query, v)}
		if len(h) < k {
			heap.Push(&h, hit)
			continue
		}
		if worse(h[0], hit) {
			h[0] = hit
			heap.Fix(&h, 0)
		}
	}
	out := make([]Hit, len(h))
	copy(out, h)
	sortHits(out)
	return out, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// worse reports whether a ranks below b (lower score, or equal score and later position).
func worse(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Position > b.Position
}

// hitHeap is a min-heap with the worst hit at the root.
type hitHeap []Hit

func (h hitHeap) Len() int           { return len(h) }
func (h hitHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h hitHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *hitHeap) Push(x any)        { *h = append(*h, x.(Hit)) }
func (h *hitHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
