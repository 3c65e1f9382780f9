package coursesearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	coursesPath  string
	subjectsPath string

	embedder Embedder
	openai   *openAIConfig

	cacheAddrs    []string
	cachePassword string

	backend       Backend
	candidatePool int
	batchSize     int
	workers       int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

type openAIConfig struct {
	apiKey  string
	baseURL string
	model   string
}

// WithCatalogFiles sets the course catalog and subject list JSON files.
func WithCatalogFiles(coursesPath, subjectsPath string) Option {
	return optionFunc(func(c *clientConfig) {
		c.coursesPath = coursesPath
		c.subjectsPath = subjectsPath
	})
}

// WithEmbedder sets a custom text embedding provider.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAI uses an OpenAI-compatible embeddings API.
// An empty baseURL means the public OpenAI endpoint.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openai = &openAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
	})
}

// WithRedisCache caches embeddings in Redis so reloads only embed changed text.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithBackend selects the vector store. Default: BackendFlat.
func WithBackend(b Backend) Option {
	return optionFunc(func(c *clientConfig) {
		c.backend = b
	})
}

// WithCandidatePool sets how many nearest sections are considered before filtering.
// Default: 100.
func WithCandidatePool(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.candidatePool = n
	})
}

// WithBatchSize sets the number of texts per embedding call during a reload.
// Default: 128.
func WithBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = n
	})
}

// WithWorkers sets the number of concurrent embedding calls during a reload.
// Default: 4.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
