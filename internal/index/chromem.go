package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

const chromemCollection = "course_sections"

var errNoEmbeddingFunc = errors.New("chromem store only accepts precomputed embeddings")

// ChromemStore keeps vectors in an in-memory chromem-go collection. Document IDs are
// the decimal positions so hits map back to the parallel document array.
type ChromemStore struct {
	collection  *chromem.Collection
	concurrency int
}

var _ Store = (*ChromemStore)(nil)

// NewChromemStore creates a store backed by a fresh in-memory chromem DB.
// concurrency bounds chromem's parallel inserts.
func NewChromemStore(concurrency int) (*ChromemStore, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	db := chromem.NewDB()
	col, err := db.CreateCollection(chromemCollection, nil, refuseEmbedding)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &ChromemStore{collection: col, concurrency: concurrency}, nil
}

// refuseEmbedding guards against chromem embedding content on its own.
func refuseEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoEmbeddingFunc
}

// Add inserts vectors with IDs continuing from the current count.
func (s *ChromemStore) Add(ctx context.Context, vectors [][]float32) error {
	offset := s.collection.Count()
	docs := make([]chromem.Document, len(vectors))
	for i, v := range vectors {
		docs[i] = chromem.Document{
			ID:        strconv.Itoa(offset + i),
			Embedding: v,
		}
	}
	if err := s.collection.AddDocuments(ctx, docs, s.concurrency); err != nil {
		return fmt.Errorf("chromem add: %w", err)
	}
	return nil
}

// Len returns the number of stored vectors.
func (s *ChromemStore) Len() int { return s.collection.Count() }

// Search queries the collection; chromem requires k <= count.
func (s *ChromemStore) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	if count := s.collection.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := s.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		pos, err := strconv.Atoi(r.ID)
		if err != nil {
			return nil, fmt.Errorf("chromem result id %q: %w", r.ID, err)
		}
		hits = append(hits, Hit{Position: pos, Score: float64(r.Similarity)})
	}
	sortHits(hits)
	return hits, nil
}
