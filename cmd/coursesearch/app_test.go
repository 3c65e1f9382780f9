package main

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/config"
	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/index"
	embeddinguc "github.com/kailas-cloud/coursesearch/internal/usecase/embedding"
)

func TestStoreFactory(t *testing.T) {
	s, err := storeFactory(config.IndexConfig{Backend: config.BackendChromem}, 2)()
	if err != nil {
		t.Fatalf("chromem factory: %v", err)
	}
	if _, ok := s.(*index.ChromemStore); !ok {
		t.Errorf("expected *index.ChromemStore, got %T", s)
	}

	s, err = storeFactory(config.IndexConfig{Backend: config.BackendFlat}, 2)()
	if err != nil {
		t.Fatalf("flat factory: %v", err)
	}
	if _, ok := s.(*index.FlatStore); !ok {
		t.Errorf("expected *index.FlatStore, got %T", s)
	}
}

func TestBuildEmbedder_Chain(t *testing.T) {
	cfg := config.EmbeddingConfig{Provider: "openai", BaseURL: "http://localhost/v1", Model: "m", BatchSize: 8}

	e := buildEmbedder(cfg, config.CacheConfig{}, nil, zap.NewNop())
	if _, ok := e.(*embeddinguc.InstrumentedEmbedder); !ok {
		t.Errorf("expected instrumented embedder outermost, got %T", e)
	}

	cfg.Serialize = true
	e = buildEmbedder(cfg, config.CacheConfig{}, nil, zap.NewNop())
	if _, ok := e.(*domain.SerializedEmbedder); !ok {
		t.Errorf("expected serialized embedder outermost, got %T", e)
	}

	if withInstruction(e, "") != e {
		t.Error("empty instruction should not wrap")
	}
	if _, ok := withInstruction(e, "query: ").(*domain.InstructionEmbedder); !ok {
		t.Error("expected instruction embedder")
	}
}

func TestNewApp_NotReadyUntilRebuild(t *testing.T) {
	cfg := config.Config{Embedding: config.EmbeddingConfig{BaseURL: "http://localhost/v1"}}
	cfg.ApplyDefaults()

	a, err := newApp(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.close()

	if a.search.Ready() {
		t.Error("search should not be ready before the first rebuild")
	}
	if a.cache != nil {
		t.Error("cache should be nil when disabled")
	}
}
