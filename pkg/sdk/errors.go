package coursesearch

import "github.com/kailas-cloud/coursesearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrCatalogUnavailable     = domain.ErrCatalogUnavailable
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrIndexNotReady          = domain.ErrIndexNotReady
)
