package request

import (
	"fmt"

	"github.com/kailas-cloud/coursesearch/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	// DefaultPool is the default candidate pool size.
	DefaultPool = 100
	// MaxPool bounds the candidate pool size.
	MaxPool = 1000
	// Limit is the fixed number of results returned.
	Limit = 3
)

// Request is a validated search query.
type Request struct {
	query string
	pool  int
}

// New validates a query. An empty query is allowed; pool <= 0 means DefaultPool.
func New(query string, pool int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if pool <= 0 {
		pool = DefaultPool
	}
	if pool > MaxPool {
		pool = MaxPool
	}
	return Request{query: query, pool: pool}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Pool returns the candidate pool size.
func (r *Request) Pool() int { return r.pool }
