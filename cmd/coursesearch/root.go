package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursesearch/internal/config"
	logpkg "github.com/kailas-cloud/coursesearch/internal/logger"
)

var (
	cfgFile string
	envName string
)

var rootCmd = &cobra.Command{
	Use:   "coursesearch",
	Short: "Semantic course section search with year, weekday and subject filters",
	Long: `coursesearch loads a course catalog, embeds every course section and answers
free-text queries such as "second year computer science on tuesdays" with the
three most relevant sections. It runs as an HTTP API, a one-shot CLI query or
an MCP tool server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: config/<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment name: local, dev, prod (default: $ENV or local)")
}

// setup loads configuration and creates the logger shared by every command.
func setup() (config.Config, *zap.Logger, string, error) {
	env := envName
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, env, nil
}
