package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or malformed query in a request.
	ErrInvalidQuery = errors.New("Invalid query") //nolint:staticcheck // client-facing message
	// ErrCatalogUnavailable signals that the catalog or subjects source could not be read or parsed.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexNotReady signals that no index snapshot has been published yet.
	ErrIndexNotReady = errors.New("index not ready")
)
