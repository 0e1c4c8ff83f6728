package main

import (
	"log/slog"
	"os"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/amazon"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/openai"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	"github.com/eshaffer321/amazon-ynab-sync/internal/api"
	appsync "github.com/eshaffer321/amazon-ynab-sync/internal/application/sync"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/memo"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/cache"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/config"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/logging"
)

func main() {
	configFile := ""
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg, err := config.LoadOrEnv(configFile)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The API surface has no stdin to prompt on.
	cfg.Sync.NonInteractive = true

	logger := logging.NewLoggerWithSystem(cfg.Logging, "api")

	store, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		logger.Warn("failed to open cache, continuing without it", slog.String("error", err.Error()))
		store = nil
	} else {
		defer store.Close()
	}

	var summarizer memo.Summarizer
	if cfg.OpenAI.UseAISummarization {
		summarizer = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	orchestrator := appsync.NewOrchestrator(
		cfg,
		ynab.NewClient(cfg.YNAB.APIKey),
		amazon.NewProvider(logger, &amazon.ProviderConfig{Headless: true}),
		store,
		summarizer,
		nil,
		os.Stdout,
		logger,
	)

	server := api.NewServer(cfg.API, orchestrator, logger)
	if err := server.Run(); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
