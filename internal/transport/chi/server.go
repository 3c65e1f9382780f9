package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	healthuc "github.com/kailas-cloud/coursesearch/internal/usecase/health"
)

const (
	// maxBodyBytes bounds the request body of POST /query.
	maxBodyBytes = 64 << 10
	// embeddingTokensHeader reports the tokens spent embedding the query.
	embeddingTokensHeader = "X-Embedding-Tokens"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher answers free-text course queries.
type Searcher interface {
	Query(ctx context.Context, query string) ([]string, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// QueryRequest is the POST /query body. Query is a pointer so an absent field is
// distinguishable from an empty string.
type QueryRequest struct {
	Query *string `json:"query"`
}

// QueryResponse is the POST /query success body.
type QueryResponse struct {
	RelevantSections []string `json:"relevant_sections"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents"`
}

// Server serves the course search HTTP API.
type Server struct {
	search        Searcher
	health        HealthChecker
	documents     func() int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. documents reports the indexed document count
// for the health body and may be nil.
func NewServer(search Searcher, health HealthChecker, documents func() int, logger *zap.Logger) *Server {
	s := &Server{
		search:    search,
		health:    health,
		documents: documents,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusInternalServerError),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusInternalServerError),
	}
	return s
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Query == nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidQuery.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	sections, err := s.search.Query(ctx, *req.Query)
	if err != nil {
		s.handleDomainError(ctx, w, err)
		return
	}
	if usage.Used {
		w.Header().Set(embeddingTokensHeader, strconv.Itoa(usage.TotalTokens))
	}

	writeJSON(w, http.StatusOK, QueryResponse{RelevantSections: sections})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	resp := HealthResponse{Status: string(report.Status), Checks: checks}
	if s.documents != nil {
		resp.Documents = s.documents()
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrIndexNotReady,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorDimMismatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(ctx)))
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
