package bootstrap

import (
	"fmt"
	"log/slog"

	mcpadapter "github.com/upstage-community/upstage-mcp/internal/adapters/mcp"
	"github.com/upstage-community/upstage-mcp/internal/config"
	"github.com/upstage-community/upstage-mcp/internal/core/usecase"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/docfile"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/resilience"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/schema"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/storage/localfs"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/upstage"
	"github.com/upstage-community/upstage-mcp/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.APIMetrics
	Handler *mcpadapter.ToolHandler
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	apiMetrics := metrics.NewAPIMetrics("upstage-mcp")

	client, err := upstage.New(upstage.Options{
		BaseURL:        cfg.UpstageBaseURL,
		APIKey:         cfg.UpstageAPIKey,
		RequestTimeout: cfg.RequestTimeout,
		Resilience: resilience.Config{
			RetryMaxAttempts:    cfg.RetryMaxAttempts,
			RetryInitialBackoff: cfg.RetryInitialBackoff,
			RetryMaxBackoff:     cfg.RetryMaxBackoff,
			RetryMultiplier:     cfg.RetryMultiplier,
			BreakerEnabled:      cfg.BreakerEnabled,
		},
		RateLimitRPS:   cfg.APIRateLimitRPS,
		RateLimitBurst: cfg.APIRateLimitBurst,
		Metrics:        apiMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("init upstage client: %w", err)
	}

	store, err := localfs.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("init artifact store: %w", err)
	}

	resolver := docfile.NewResolver()
	normalizer := upstage.NewNormalizer()
	schemaLoader := schema.NewLoader()

	parseUC := usecase.NewParseDocumentUseCase(resolver, client, normalizer, store)
	extractUC := usecase.NewExtractInformationUseCase(resolver, client, normalizer, store, schemaLoader)

	handler := mcpadapter.NewToolHandler(parseUC, extractUC, apiMetrics, logger)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: apiMetrics,
		Handler: handler,
	}, nil
}
