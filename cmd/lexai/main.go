// Command lexai searches South African case law from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/lexai/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexai/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexai/internal/adapters/driven/payment/paystack"
	"github.com/custodia-labs/lexai/internal/adapters/driven/sources/completion"
	"github.com/custodia-labs/lexai/internal/adapters/driven/sources/saflii"
	"github.com/custodia-labs/lexai/internal/adapters/driven/sources/static"
	"github.com/custodia-labs/lexai/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexai/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/services"
	"github.com/custodia-labs/lexai/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// Environment variables.
const (
	envHome   = "LEXAI_HOME"
	envAPIKey = "LEXAI_OPENAI_API_KEY"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Could not load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, err := homeDir()
	if err != nil {
		return report(err)
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return report(fmt.Errorf("opening config: %w", err))
	}

	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		return report(fmt.Errorf("opening database: %w", err))
	}
	defer store.Close()

	credentials := store.CredentialStore()
	seedAPIKey(ctx, credentials)

	// Core services
	quotaService := services.NewQuotaTracker(store.QuotaStore())
	settingsService := services.NewSettingsService(configStore, credentials)
	settingsService.SetAIValidator(ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return report(fmt.Errorf("reading settings: %w", err))
	}
	aiSettings := func() domain.AISettings {
		current, err := settingsService.Get()
		if err != nil {
			return settings.AI
		}
		return current.AI
	}

	// Search sources
	staticClient := static.NewClient()
	scrapeClient, err := saflii.NewClient(saflii.Config{
		BaseURL:       settings.Scrape.BaseURL,
		RatePerSecond: settings.Scrape.RatePerSecond,
	})
	if err != nil {
		return report(fmt.Errorf("configuring SAFLII: %w", err))
	}
	mockClient := completion.NewMockGenerator(static.Cases(), nil)
	aiClient := completion.NewClient(credentials, aiSettings, ai.CreateLLMService, mockClient)

	searchService := services.NewSearchService(quotaService,
		staticClient,
		services.ScrapeChain(scrapeClient, staticClient),
		services.AIChain(aiClient, mockClient, func() bool { return aiSettings().MockOnRateLimit }),
	)
	searchService.SetSettingsService(settingsService)

	gateway := paystack.NewGateway(paystack.DefaultConfirmDelay)
	defer gateway.Cancel()
	subscriptionService := services.NewSubscriptionService(quotaService, gateway)

	configEvents := watchConfig(ctx, configStore)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:       searchService,
		Quota:        quotaService,
		Settings:     settingsService,
		Subscription: subscriptionService,
		Actions:      services.NewCaseActionService(),
		Lookup:       services.NewCaseLookupService(quotaService, staticClient),
		Payments:     gateway,
		ConfigEvents: configEvents,
	})

	// cobra has already printed the error.
	return cli.ExecuteContext(ctx)
}

// homeDir returns the lexai data directory, honouring LEXAI_HOME.
func homeDir() (string, error) {
	if dir := os.Getenv(envHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".lexai"), nil
}

// seedAPIKey stores the key from the environment when none is stored yet.
func seedAPIKey(ctx context.Context, credentials driven.CredentialStore) {
	key := os.Getenv(envAPIKey)
	if key == "" {
		return
	}
	stored, err := credentials.GetAPIKey(ctx)
	if err != nil {
		logger.Warn("Reading stored API key: %v", err)
		return
	}
	if stored != "" {
		return
	}
	if err := credentials.SetAPIKey(ctx, key); err != nil {
		logger.Warn("Storing API key from %s: %v", envAPIKey, err)
		return
	}
	logger.Debug("Seeded API key %s from %s", domain.MaskAPIKey(key), envAPIKey)
}

// watchConfig reloads the config store on external edits and signals each
// reload on the returned channel. Signals are coalesced when nobody reads.
func watchConfig(ctx context.Context, store *file.ConfigStore) <-chan struct{} {
	events := make(chan struct{}, 1)
	watcher, err := file.NewWatcher(store, func() {
		select {
		case events <- struct{}{}:
		default:
		}
	})
	if err != nil {
		logger.Warn("Config changes will not be picked up: %v", err)
		return nil
	}

	go func() {
		defer watcher.Close()
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Config watcher stopped: %v", err)
		}
	}()
	return events
}

func report(err error) error {
	logger.Error("%v", err)
	return err
}
