package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/config"
	dbRedis "github.com/kailas-cloud/coursesearch/internal/db/redis"
	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/index"
	"github.com/kailas-cloud/coursesearch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/coursesearch/internal/repository/catalog"
	"github.com/kailas-cloud/coursesearch/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/coursesearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/coursesearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/coursesearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/coursesearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/coursesearch/internal/usecase/search"
)

// app is the composition root shared by the serve, query and mcp commands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	cache    *dbRedis.Store
	search   *searchuc.Service
	indexing *indexinguc.Service
	health   *healthuc.Service
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	a := &app{cfg: cfg, logger: logger}

	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		a.cache = store
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	base := buildEmbedder(cfg.Embedding, cfg.Cache, a.cache, logger)
	docEmbedder := withInstruction(base, cfg.Embedding.DocumentInstruction)
	queryEmbedder := withInstruction(base, cfg.Embedding.QueryInstruction)
	logger.Info("Embedders created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", a.cache != nil),
		zap.Bool("serialized", cfg.Embedding.Serialize),
	)

	builder := index.NewBuilder(docEmbedder, storeFactory(cfg.Index, cfg.Embedding.BuildConcurrency), logger).
		WithBatchSize(cfg.Embedding.BatchSize).
		WithWorkers(cfg.Embedding.BuildConcurrency)

	a.search = searchuc.New(queryEmbedder, cfg.Index.CandidatePool, logger)
	loader := catalogrepo.NewLoader(cfg.Catalog.CoursesPath, cfg.Catalog.SubjectsPath, logger)
	a.indexing = indexinguc.New(loader, builder, a.search, logger)

	// Pass nil interface (not typed nil pointer) when the cache is disabled.
	var cachePinger healthuc.CachePinger
	if a.cache != nil {
		cachePinger = a.cache
	}
	a.health = healthuc.New(a.search, newEmbeddingHealthChecker(queryEmbedder), cachePinger)

	return a, nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

func storeFactory(cfg config.IndexConfig, concurrency int) index.StoreFactory {
	if cfg.Backend == config.BackendChromem {
		return index.ChromemStoreFactory(concurrency)
	}
	return index.FlatStoreFactory
}

// buildEmbedder assembles the shared decorator chain: OpenAI -> Cached -> Instrumented -> Serialized.
func buildEmbedder(
	cfg config.EmbeddingConfig,
	cacheCfg config.CacheConfig,
	store *dbRedis.Store,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger).
			WithScope(cfg.Model).
			WithTTL(time.Duration(cacheCfg.TTLHours) * time.Hour)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Provider, cfg.Model, logger).
		WithMaxBatchSize(cfg.BatchSize)

	if cfg.Serialize {
		embedder = domain.NewSerializedEmbedder(embedder)
	}
	return embedder
}

// withInstruction puts the instruction prefix outermost so cache keys include it.
func withInstruction(inner domain.Embedder, instruction string) domain.Embedder {
	if instruction == "" {
		return inner
	}
	return domain.NewInstructionEmbedder(inner, instruction)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}
