package coursesearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/coursesearch/internal/db/redis"
	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/request"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/result"
	"github.com/kailas-cloud/coursesearch/internal/index"
	"github.com/kailas-cloud/coursesearch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/coursesearch/internal/repository/catalog"
	"github.com/kailas-cloud/coursesearch/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/coursesearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/coursesearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/coursesearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/coursesearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Rank(ctx context.Context, req request.Request) ([]result.Scored, error)
}

type indexingUseCase interface {
	Rebuild(ctx context.Context) (indexinguc.Report, error)
}

// Client is the coursesearch SDK entry point.
type Client struct {
	cache       *dbRedis.Store
	searchSvc   searchUseCase
	indexingSvc indexingUseCase
	healthSvc   healthUseCase
	pool        int
	obs         *observer
}

// New creates a Client, connects to the optional cache and loads the catalog.
// The provided context is used for the readiness check and the first reload.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{backend: BackendFlat}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.coursesPath == "" || cfg.subjectsPath == "" {
		return nil, errors.New("coursesearch: catalog files required (use WithCatalogFiles)")
	}
	if cfg.embedder == nil && cfg.openai == nil {
		return nil, errors.New("coursesearch: embedder required (use WithEmbedder or WithOpenAI)")
	}
	if cfg.backend != BackendFlat && cfg.backend != BackendChromem {
		return nil, fmt.Errorf("coursesearch: unknown backend %q", cfg.backend)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var cache *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("coursesearch: create redis store: %w", err)
		}
		if err := cache.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			cache.Close()
			return nil, fmt.Errorf("coursesearch: cache not ready: %w", err)
		}
	}

	c := wireClient(cfg, cache, obs)
	if _, err := c.Reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(cfg *clientConfig, cache *dbRedis.Store, obs *observer) *Client {
	logger := zap.NewNop()

	var emb domain.Embedder
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	} else {
		baseURL := cfg.openai.baseURL
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		emb = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:   cfg.openai.apiKey,
			BaseURL:  baseURL,
			Model:    cfg.openai.model,
			Provider: "openai",
			Logger:   logger,
		})
	}
	if cache != nil {
		scope := "custom"
		if cfg.openai != nil {
			scope = cfg.openai.model
		}
		emb = embcache.New(emb, cache, metrics.EmbeddingCacheTotal, logger).WithScope(scope)
	}

	newStore := index.FlatStoreFactory
	if cfg.backend == BackendChromem {
		newStore = index.ChromemStoreFactory(cfg.workers)
	}
	builder := index.NewBuilder(emb, newStore, logger).
		WithBatchSize(cfg.batchSize).
		WithWorkers(cfg.workers)

	searchSvc := searchuc.New(emb, cfg.candidatePool, logger)
	loader := catalogrepo.NewLoader(cfg.coursesPath, cfg.subjectsPath, logger)

	var pinger healthuc.CachePinger
	if cache != nil {
		pinger = cache
	}

	return &Client{
		cache:       cache,
		searchSvc:   searchSvc,
		indexingSvc: indexinguc.New(loader, builder, searchSvc, logger),
		healthSvc:   healthuc.New(searchSvc, nil, pinger),
		pool:        cfg.candidatePool,
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Reload re-reads the catalog and swaps in a freshly built index.
// On failure the previous index keeps serving.
func (c *Client) Reload(ctx context.Context) (_ ReloadReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	r, err := c.indexingSvc.Rebuild(ctx)
	if err != nil {
		return ReloadReport{}, fmt.Errorf("reload: %w", err)
	}
	return ReloadReport{
		Courses:   r.Courses,
		Documents: r.Documents,
		Skipped:   r.Skipped,
		Duration:  r.Duration,
	}, nil
}

// Search returns at most three sections for query, best first.
func (c *Client) Search(ctx context.Context, query string) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.New(query, c.pool)
	if err != nil {
		return nil, err
	}
	ranked, err := c.searchSvc.Rank(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]SearchResult, len(ranked))
	for i := range ranked {
		out[i] = searchResultFromDomain(&ranked[i])
	}
	return out, nil
}

// Query returns the display text of the best sections, as served by POST /query.
func (c *Client) Query(ctx context.Context, query string) ([]string, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out, nil
}

func searchResultFromDomain(r *result.Scored) SearchResult {
	sec := r.Section()
	return SearchResult{
		CourseCode:  sec.CourseCode,
		Title:       sec.Title,
		Year:        sec.Year,
		Subject:     sec.SubjectCode,
		Days:        sec.Days,
		Time:        sec.Time,
		Instructors: sec.Instructors,
		Description: sec.Description,
		Score:       r.Score(),
		Similarity:  r.Similarity(),
		Text:        sec.Display(),
	}
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// BatchEmbed uses the inner BatchEmbedder when available, else embeds one by one.
func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	be, ok := a.inner.(BatchEmbedder)
	if !ok {
		return domain.BatchFallback(ctx, a, texts)
	}
	r, err := be.BatchEmbed(ctx, texts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   r.Embeddings,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
