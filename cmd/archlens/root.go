package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archlens/internal/analysis"
	"archlens/internal/config"
	llmclient "archlens/internal/llm/client"
	"archlens/internal/llm/middleware"
	"archlens/internal/logging"
	"archlens/internal/metrics"
	"archlens/internal/workspace"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	provider   string
	model      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "archlens",
		Short: "Turn business scenarios into enterprise architecture views",
		Long: `archlens analyses free-text business scenarios against an architecture
framework (TOGAF, Zachman, ISO 42001 or Custom) and normalises the result
into components, capabilities and a target vision.

Without an API key it runs against a built-in fake model.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.provider, "provider", "", "LLM provider: gemini, groq, ollama or fake")
	root.PersistentFlags().StringVar(&c.model, "model", "", "model identifier")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newAnalyzeCmd(c),
		newAskCmd(c),
		newServeCmd(c),
		newFrameworksCmd(c),
		newComplianceCmd(c),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Override(c.provider, c.model); err != nil {
		return err
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	c.cfg, c.logger = cfg, logger
	return nil
}

// app is the wired object graph for one command invocation.
type app struct {
	base      llmclient.TextClient
	client    llmclient.TextClient
	usage     *middleware.UsageCounter
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
	analyzer  *analysis.Analyzer
	workspace *workspace.Workspace
}

func (c *cli) build(ctx context.Context, extra ...middleware.Middleware) (*app, error) {
	base, err := llmclient.New(ctx, c.cfg.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	usage := middleware.NewUsageCounter()

	mws := []middleware.Middleware{
		middleware.WithLogging(c.logger),
		middleware.WithMetrics(m),
		middleware.WithUsage(usage),
		middleware.WithCache(c.cfg.LLM.CacheSize),
		middleware.RateLimit(c.cfg.LLM.RPS, c.cfg.LLM.Burst),
	}
	client := middleware.Wrap(base, append(mws, extra...)...)

	an := &analysis.Analyzer{
		LLM:            client,
		Model:          c.cfg.LLM.Model,
		ScenarioTokens: c.cfg.LLM.ScenarioTokens,
		QuestionTokens: c.cfg.LLM.QuestionTokens,
		Logger:         c.logger.Named("analysis"),
		Metrics:        m,
	}
	ws := workspace.New(an, nil, workspace.Options{
		Framework: c.cfg.DefaultFramework(),
		Logger:    c.logger,
		Metrics:   m,
	})
	c.logger.Debug("llm client ready",
		zap.String("provider", c.cfg.LLM.Provider),
		zap.String("client", base.Name()),
		zap.String("model", c.cfg.LLM.Model))
	return &app{base: base, client: client, usage: usage, metrics: m, registry: reg, analyzer: an, workspace: ws}, nil
}

func (a *app) Close() error { return a.client.Close() }

func (c *cli) logUsage(a *app) {
	for _, s := range a.usage.Snapshot() {
		c.logger.Debug("llm usage",
			zap.String("model", s.Model),
			zap.Int64("requests", s.Requests),
			zap.Int64("tokens", s.Tokens),
			zap.Int64("errors", s.Errors))
	}
	q, ok := a.base.(llmclient.QuotaReporter)
	if !ok {
		return
	}
	if rl, ok := q.LastRateLimitHeaders(); ok {
		c.logger.Debug("llm quota",
			zap.String("client", a.base.Name()),
			zap.Int("remaining_requests", rl.RemainingRequests),
			zap.Int("remaining_tokens", rl.RemainingTokens),
			zap.Duration("reset_requests", rl.ResetRequests),
			zap.Duration("reset_tokens", rl.ResetTokens),
			zap.Int("retry_after_seconds", rl.RetryAfterSeconds))
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
