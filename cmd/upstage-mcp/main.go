package main

import (
	"log"
	"net/http"
	"time"

	mcpadapter "github.com/upstage-community/upstage-mcp/internal/adapters/mcp"
	"github.com/upstage-community/upstage-mcp/internal/bootstrap"
	"github.com/upstage-community/upstage-mcp/internal/config"
	"github.com/upstage-community/upstage-mcp/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.NewJSONLogger("upstage-mcp", cfg.LogLevel)

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	if cfg.MetricsPort != "" {
		metricsServer := &http.Server{
			Addr:         ":" + cfg.MetricsPort,
			Handler:      app.Metrics.Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics listening", "port", cfg.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	server := mcpadapter.NewServer(version, app.Handler)
	logger.Info("serving mcp over stdio", "output_dir", cfg.OutputDir)
	if err := mcpadapter.Serve(server); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
