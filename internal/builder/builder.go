package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/realtor-bot/internal/api"
	bookingsapi "github.com/futig/realtor-bot/internal/api/bookings"
	parsingapi "github.com/futig/realtor-bot/internal/api/parsing"
	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/integration/callback"
	"github.com/futig/realtor-bot/internal/integration/listings"
	"github.com/futig/realtor-bot/internal/pkg/formatter"
	"github.com/futig/realtor-bot/internal/pkg/logger"
	"github.com/futig/realtor-bot/internal/pkg/validator"
	"github.com/futig/realtor-bot/internal/repository"
	"github.com/futig/realtor-bot/internal/telegram"
	"github.com/futig/realtor-bot/internal/usecase/booking"
	"github.com/futig/realtor-bot/internal/usecase/conversation"
	"github.com/futig/realtor-bot/internal/usecase/parsing"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

// Build assembles the HTTP API: extraction, merge and booking exports.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("storage", cfg.Storage),
	)

	store, err := setupStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("Repositories initialized")

	eng := setupEngine(cfg, log)
	setupExports(cfg, log)

	parsingUC := parsing.NewUsecase(eng.extractor, eng.matcher, eng.merger, eng.checker, eng.lexicon)
	bookingUC := booking.NewUsecase(store.bookings, formatter.NewFactory(formatter.WithPDFFont(cfg.ExportCfg.PDFFontPath)))
	log.Info("Use cases initialized")

	parsingHandler := parsingapi.NewHandler(parsingUC, validator.New())
	bookingsHandler := bookingsapi.NewHandler(bookingUC)
	log.Info("API handlers initialized")

	router := api.SetupRouter(parsingHandler, bookingsHandler, log)
	log.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		storage: store,
		logger:  log,
	}, nil
}

// BuildTelegramBot assembles the Telegram conversation front-end
func BuildTelegramBot() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.TelegramCfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
	)

	store, err := setupStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("Repositories initialized")

	eng := setupEngine(cfg, log)

	var listingsConnector conversation.ListingsConnector
	if cfg.EnableMocks {
		log.Info("Using mock listings connector")
		listingsConnector = listings.NewMockConnector(log)
	} else {
		log.Info("Using listings connector",
			zap.String("base_url", cfg.ListingsCfg.Url),
			zap.String("endpoint", cfg.ListingsCfg.Endpoint),
		)
		listingsConnector = listings.NewConnector(cfg.ListingsCfg, log)
	}

	bookings := store.bookings
	if cfg.BookingWebhookCfg.Enabled() {
		log.Info("Booking webhook enabled", zap.String("url", cfg.BookingWebhookCfg.Url))
		bookings = repository.NewNotifyingBookings(bookings, callback.NewConnector(cfg.BookingWebhookCfg, log))
	}

	conversationUC := conversation.NewUsecase(
		store.sessions,
		bookings,
		listingsConnector,
		eng.merger,
		eng.resolver,
		eng.checker,
		eng.lexicon,
		cfg.LimitPerPage,
		log,
	)
	log.Info("Use cases initialized")

	bot, err := telegram.NewBot(&cfg.TelegramCfg, conversationUC, &cfg.ListingsCfg.Retry, log)
	if err != nil {
		store.close()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		bot:     bot,
		storage: store,
		logger:  log,
	}, nil
}

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.Debug)
}

// setupExports registers the unioffice key; DOCX export fails without one.
func setupExports(cfg *config.Config, log *zap.Logger) {
	key := cfg.ExportCfg.UnidocLicenseKey
	if key == "" {
		log.Warn("UNIDOC_LICENSE_API_KEY is not set, DOCX export is unavailable")
		return
	}
	if err := license.SetMeteredKey(key); err != nil {
		log.Warn("unioffice license rejected, DOCX export is unavailable", zap.Error(err))
	}
}
