package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/config"
	logpkg "github.com/kailas-cloud/explorer/internal/logger"
	"github.com/kailas-cloud/explorer/internal/metrics"
	openaiTransport "github.com/kailas-cloud/explorer/internal/transport/openai"
	"github.com/kailas-cloud/explorer/internal/transport/tavily"
	"github.com/kailas-cloud/explorer/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Explorer - web-grounded topic summaries",
	Long: `Explorer searches the web for a topic, shaped by a category
(Overview, Research, News, Fact-Check), and asks a language model to
summarize the results into Markdown with cited sources.`,
	Version:      version.Version,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a YAML config file (default: config/<ENV>.yaml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf("explorer %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.Date))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// loadConfig reads the explicit --config path or the file for the current ENV.
func loadConfig(env string) (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(env)
}

// bootstrap loads config and builds the logger shared by every command.
func bootstrap() (config.Config, *zap.Logger, string, error) {
	env := config.GetEnv()

	cfg, err := loadConfig(env)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, env, nil
}

// buildProviders wires the search and completion adapters.
func buildProviders(cfg *config.Config, logger *zap.Logger) (*tavily.Client, *openaiTransport.Completer) {
	metrics.RegisterProviderMetrics()

	searcher := tavily.NewClient(&tavily.Config{
		APIKey:      cfg.Search.APIKey,
		BaseURL:     cfg.Search.BaseURL,
		Timeout:     time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Logger:      logger,
		ProbeHealth: cfg.Search.HealthProbe,
	})
	completer := openaiTransport.NewCompleter(&openaiTransport.Config{
		APIKey:   cfg.Completion.APIKey,
		BaseURL:  cfg.Completion.BaseURL,
		Model:    cfg.Completion.Model,
		Provider: cfg.Completion.Provider,
		Timeout:  time.Duration(cfg.Completion.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	if !searcher.Configured() {
		logger.Warn("search API key is not set, summarize requests will fail",
			zap.String("provider", cfg.Search.Provider))
	}
	if !completer.Configured() {
		logger.Warn("completion API key is not set, summarize requests will fail",
			zap.String("provider", cfg.Completion.Provider))
	}
	return searcher, completer
}
