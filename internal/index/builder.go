package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/domain/document"
)

const (
	// DefaultBatchSize is the number of texts per embedding call.
	DefaultBatchSize = 128
	// DefaultWorkers is the number of concurrent embedding calls during a build.
	DefaultWorkers = 4
)

// StoreFactory creates an empty Store for a new build.
type StoreFactory func() (Store, error)

// FlatStoreFactory creates FlatStores.
func FlatStoreFactory() (Store, error) { return NewFlatStore(), nil }

// ChromemStoreFactory creates ChromemStores with the given insert concurrency.
func ChromemStoreFactory(concurrency int) StoreFactory {
	return func() (Store, error) { return NewChromemStore(concurrency) }
}

// Builder embeds documents and assembles an Index.
type Builder struct {
	embedder  domain.Embedder
	newStore  StoreFactory
	batchSize int
	workers   int
	logger    *zap.Logger
}

// NewBuilder creates a builder. newStore nil means FlatStoreFactory.
func NewBuilder(embedder domain.Embedder, newStore StoreFactory, logger *zap.Logger) *Builder {
	if newStore == nil {
		newStore = FlatStoreFactory
	}
	return &Builder{
		embedder:  embedder,
		newStore:  newStore,
		batchSize: DefaultBatchSize,
		workers:   DefaultWorkers,
		logger:    logger,
	}
}

// WithBatchSize sets the number of texts per embedding call.
func (b *Builder) WithBatchSize(n int) *Builder {
	if n > 0 {
		b.batchSize = n
	}
	return b
}

// WithWorkers sets the number of concurrent embedding calls.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// Build embeds every document text and returns the assembled Index.
func (b *Builder) Build(ctx context.Context, docs []document.Document) (*Index, error) {
	store, err := b.newStore()
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	start := time.Now()
	vectors, err := b.embedAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	idx, err := New(ctx, docs, vectors, store)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Index built",
		zap.Int("documents", idx.Len()),
		zap.Int("dimensions", idx.Dimensions()),
		zap.Duration("duration", time.Since(start)),
	)
	return idx, nil
}

// embedAll embeds texts in batches on a bounded worker pool, preserving order.
func (b *Builder) embedAll(ctx context.Context, docs []document.Document) ([][]float32, error) {
	vectors := make([][]float32, len(docs))
	if len(docs) == 0 {
		return vectors, nil
	}

	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for offset := 0; offset < len(docs); offset += b.batchSize {
		end := min(offset+b.batchSize, len(docs))
		texts := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			texts = append(texts, docs[i].Text())
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := domain.BatchEmbedWith(ctx, b.embedder, texts)
			if err != nil {
				b.logger.Error("Batch embedding failed",
					zap.Int("offset", offset), zap.Int("size", len(texts)), zap.Error(err))
				fail(fmt.Errorf("embed batch at %d: %w", offset, err))
				return
			}
			if len(res.Embeddings) != len(texts) {
				fail(fmt.Errorf("%w: %d embeddings for %d texts at %d",
					domain.ErrVectorDimMismatch, len(res.Embeddings), len(texts), offset))
				return
			}
			copy(vectors[offset:end], res.Embeddings)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			fail(fmt.Errorf("submit batch at %d: %w", offset, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}
