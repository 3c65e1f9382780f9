// Package mcp exposes course search as Model Context Protocol tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain/search/request"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/result"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Ranker ranks a validated request against the published index.
type Ranker interface {
	Rank(ctx context.Context, req request.Request) ([]result.Scored, error)
}

// Server wraps an MCP server that exposes course search tools.
type Server struct {
	ranker Ranker
	pool   int
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates an MCP server. pool is the default candidate pool size.
func NewServer(ranker Ranker, pool int, logger *zap.Logger) *Server {
	s := &Server{ranker: ranker, pool: pool, logger: logger}

	s.mcp = server.NewMCPServer(
		"coursesearch",
		Version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(findCourseSectionsTool, s.handleFindCourseSections)
	s.mcp.AddTool(explainQueryTool, s.handleExplainQuery)
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages, so
// logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
