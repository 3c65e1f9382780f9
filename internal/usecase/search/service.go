package search

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/constraint"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/expand"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/request"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/result"
	"github.com/kailas-cloud/coursesearch/internal/index"
	"github.com/kailas-cloud/coursesearch/internal/metrics"
)

// Service answers free-text course queries against the published index snapshot.
// Snapshots are swapped atomically, so queries never observe a half-built index.
type Service struct {
	index  atomic.Pointer[index.Index]
	embed  Embedder
	pool   int
	logger *zap.Logger
}

// New creates a search service. pool <= 0 means request.DefaultPool.
func New(embed Embedder, pool int, logger *zap.Logger) *Service {
	return &Service{embed: embed, pool: pool, logger: logger}
}

// Swap publishes idx and returns the previous snapshot (nil on first publish).
func (s *Service) Swap(idx *index.Index) *index.Index {
	return s.index.Swap(idx)
}

// Ready reports whether a snapshot has been published.
func (s *Service) Ready() bool {
	return s.index.Load() != nil
}

// Len returns the number of documents in the current snapshot.
func (s *Service) Len() int {
	if idx := s.index.Load(); idx != nil {
		return idx.Len()
	}
	return 0
}

// Query ranks query and renders each result for display.
func (s *Service) Query(ctx context.Context, query string) ([]string, error) {
	req, err := request.New(query, s.pool)
	if err != nil {
		return nil, err
	}

	ranked, err := s.Rank(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].Section().Display()
	}
	return out, nil
}

// Rank returns at most request.Limit sections for req, best first.
func (s *Service) Rank(ctx context.Context, req request.Request) ([]result.Scored, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, domain.ErrIndexNotReady
	}

	set, residual := constraint.Extract(req.Query())
	countConstraints(set)

	if idx.Len() == 0 {
		metrics.SearchResults.Observe(0)
		return []result.Scored{}, nil
	}

	hits, err := s.candidates(ctx, idx, req, residual)
	if err != nil {
		return nil, err
	}

	tokens := expand.Tokens(residual)
	scored := make([]result.Scored, len(hits))
	for i, h := range hits {
		doc := idx.Document(h.Position)
		scored[i] = result.New(score(h.Score, doc, set, tokens), h.Score, i, doc.Section())
	}

	out := filter(scored, set)
	relaxed := false
	if len(out) == 0 && set.Day != "" {
		out = filter(scored, set.WithoutDay())
		relaxed = true
		metrics.SearchRelaxationsTotal.Inc()
	}

	sortByScore(out)
	if len(out) > request.Limit {
		out = out[:request.Limit]
	}

	s.logger.Debug("Query ranked",
		zap.String("query", req.Query()),
		zap.String("residual", residual),
		zap.Int("year", set.Year),
		zap.String("day", set.Day),
		zap.String("subject", set.Subject),
		zap.Int("candidates", len(hits)),
		zap.Bool("relaxed", relaxed),
		zap.Int("results", len(out)),
	)
	metrics.SearchResults.Observe(float64(len(out)))

	return out, nil
}

// candidates returns the top-pool hits for the expanded residual. A residual made only of
// constraint words falls back to the original query; a blank query returns the first
// pool documents in catalog order with zero similarity.
func (s *Service) candidates(
	ctx context.Context, idx *index.Index, req request.Request, residual string,
) ([]index.Hit, error) {
	text := expand.Expand(residual)
	if strings.TrimSpace(text) == "" {
		text = strings.TrimSpace(req.Query())
	}

	if text == "" {
		n := min(req.Pool(), idx.Len())
		hits := make([]index.Hit, n)
		for i := range hits {
			hits[i] = index.Hit{Position: i}
		}
		return hits, nil
	}

	emb, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(emb.TotalTokens)

	hits, err := idx.Query(ctx, emb.Embedding, req.Pool())
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return hits, nil
}

func countConstraints(set constraint.Set) {
	if set.Year != 0 {
		metrics.SearchConstraintsTotal.WithLabelValues("year").Inc()
	}
	if set.Day != "" {
		metrics.SearchConstraintsTotal.WithLabelValues("day").Inc()
	}
	if set.Subject != "" {
		metrics.SearchConstraintsTotal.WithLabelValues("subject").Inc()
	}
}
