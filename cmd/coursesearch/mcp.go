package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpTransport "github.com/kailas-cloud/coursesearch/internal/transport/mcp"
	"github.com/kailas-cloud/coursesearch/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Build the index and serve MCP tools on stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, _, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.indexing.Rebuild(ctx); err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		mcpTransport.Version = version.Version
		logger.Info("Serving MCP tools on stdio")
		if err := mcpTransport.NewServer(a.search, cfg.Index.CandidatePool, logger).Serve(); err != nil {
			logger.Error("MCP server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
