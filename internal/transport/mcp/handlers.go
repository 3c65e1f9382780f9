package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/domain"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/constraint"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/expand"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/request"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/result"
)

func (s *Server) handleFindCourseSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	r, err := request.New(query, req.GetInt("pool", s.pool))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ranked, err := s.ranker.Rank(ctx, r)
	if err != nil {
		s.logger.Warn("MCP search failed", zap.Error(err))
		if errors.Is(err, domain.ErrIndexNotReady) {
			return mcp.NewToolResultError("the course index is still being built, try again shortly"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(ranked) == 0 {
		return mcp.NewToolResultText("No matching course sections."), nil
	}
	return mcp.NewToolResultText(formatResults(ranked)), nil
}

func (s *Server) handleExplainQuery(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	set, residual := constraint.Extract(query)

	var sb strings.Builder
	sb.WriteString("year: ")
	sb.WriteString(orAny(set.Year, strconv.Itoa(set.Year)))
	sb.WriteString("\nday: ")
	sb.WriteString(orAny(len(set.Day), set.Day))
	sb.WriteString("\nsubject: ")
	sb.WriteString(orAny(len(set.Subject), set.Subject))
	fmt.Fprintf(&sb, "\nresidual: %q\nembedded: %q\n", residual, expand.Expand(residual))
	return mcp.NewToolResultText(sb.String()), nil
}

func orAny(n int, v string) string {
	if n == 0 {
		return "any"
	}
	return v
}

func formatResults(ranked []result.Scored) string {
	var sb strings.Builder
	for i := range ranked {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. [score %.3f]\n%s\n", i+1, ranked[i].Score(), ranked[i].Section().Display())
	}
	return sb.String()
}
