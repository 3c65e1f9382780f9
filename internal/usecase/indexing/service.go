package indexing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/coursesearch/internal/domain/document"
	"github.com/kailas-cloud/coursesearch/internal/metrics"
)

// Report summarizes one rebuild.
type Report struct {
	Courses   int
	Documents int
	Skipped   []string // course codes that could not be composed
	Duration  time.Duration
}

// Service loads the catalog, builds a fresh index and publishes it.
// A failed rebuild leaves the previously published index in place.
type Service struct {
	loader    CatalogLoader
	builder   IndexBuilder
	publisher Publisher
	logger    *zap.Logger
}

// New creates an indexing service.
func New(loader CatalogLoader, builder IndexBuilder, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{loader: loader, builder: builder, publisher: publisher, logger: logger}
}

// Rebuild runs load, compose, build and publish.
func (s *Service) Rebuild(ctx context.Context) (Report, error) {
	start := time.Now()

	report, err := s.rebuild(ctx)
	report.Duration = time.Since(start)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		return report, err
	}

	metrics.IndexBuildsTotal.WithLabelValues("success").Inc()
	metrics.IndexBuildDuration.Observe(report.Duration.Seconds())
	metrics.IndexDocuments.Set(float64(report.Documents))

	s.logger.Info("Index published",
		zap.Int("courses", report.Courses),
		zap.Int("documents", report.Documents),
		zap.Int("skipped", len(report.Skipped)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (s *Service) rebuild(ctx context.Context) (Report, error) {
	cat, err := s.loader.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load catalog: %w", err)
	}

	report := Report{Courses: len(cat.Courses)}
	subjects := cat.SubjectIndex()

	var docs []domdoc.Document
	for _, course := range cat.Courses {
		composed, err := domdoc.Compose(course, subjects)
		if err != nil {
			s.logger.Warn("Skipping course", zap.String("code", course.Code), zap.Error(err))
			report.Skipped = append(report.Skipped, course.Code)
			continue
		}
		docs = append(docs, composed...)
	}

	idx, err := s.builder.Build(ctx, docs)
	if err != nil {
		return report, fmt.Errorf("build index: %w", err)
	}

	s.publisher.Swap(idx)
	report.Documents = idx.Len()
	return report, nil
}
