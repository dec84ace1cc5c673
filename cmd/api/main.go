package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/config"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/internal/infrastructure/backend"
	"github.com/sangkips/boumia-pos/internal/infrastructure/database"
	"github.com/sangkips/boumia-pos/internal/infrastructure/memory"
	"github.com/sangkips/boumia-pos/internal/infrastructure/repository"
	"github.com/sangkips/boumia-pos/internal/presentation/http/handler"
	"github.com/sangkips/boumia-pos/internal/presentation/http/middleware"
	"github.com/sangkips/boumia-pos/internal/presentation/http/routes"
	"github.com/sangkips/boumia-pos/pkg/logger"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/sangkips/boumia-pos/pkg/printer"
	"github.com/sangkips/boumia-pos/pkg/utils"
	"go.uber.org/zap"
)

// printJournalSize bounds the in-memory print journal
const printJournalSize = 500

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.EnvFileErr != nil {
		log.Debug("no .env file, using the environment", zap.Error(cfg.EnvFileErr))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	// Local storage: Postgres when configured, memory otherwise
	var (
		idempotencyRepo domainRepo.IdempotencyRepository
		printJobRepo    domainRepo.PrintJobRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.AutoMigrate(db, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		idempotencyRepo = repository.NewIdempotencyRepository(db)
		printJobRepo = repository.NewPrintJobRepository(db)
	} else {
		idempotencyRepo = memory.NewIdempotencyRepository()
		printJobRepo = memory.NewPrintJobRepository(printJournalSize)
	}
	sessionRepo := memory.NewSessionRepository()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Backend API
	client := backend.NewClient(&cfg.Backend, log)
	catalog := backend.NewCatalogRepository(client)
	orders := backend.NewOrderGateway(client)
	authGateway := backend.NewAuthGateway(client)

	// Thermal printer
	transport, err := printer.NewTransportFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("thermal printing disabled", zap.Error(err))
	}
	channel := printer.NewChannel(transport)
	defer func() { _ = channel.Close() }()

	// Services
	searchService := service.NewSearchService(catalog, cfg.Search.Debounce, m, log)
	authService := service.NewAuthService(authGateway, sessionRepo, jwtManager, searchService, log)
	checkoutService := service.NewCheckoutService(catalog, orders, m, log)
	orderService := service.NewOrderService(orders)
	receiptService := service.NewReceiptService(service.ReceiptOptions{
		StoreName: cfg.Receipt.StoreName,
		Title:     cfg.Receipt.Title,
		Footer:    cfg.Receipt.Footer,
		Currency:  cfg.Receipt.Currency,
	}, log)
	printerService := service.NewPrinterService(
		channel,
		orderService,
		receiptService,
		printJobRepo,
		service.PrinterServiceConfig{
			CharWidth:      cfg.Printer.CharWidth,
			BarcodeFontURL: cfg.Receipt.BarcodeFontURL,
		},
		m,
		log,
	)

	if cfg.Printer.ProbeOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		printerService.Probe(ctx)
		cancel()
	}

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(searchService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService, receiptService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Close()

	purger := middleware.NewIdempotencyPurger(idempotencyRepo, middleware.IdempotencyPurgeInterval, log)
	defer purger.Close()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Sessions:        authService,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Printer:         printerService,
		Metrics:         m,
		Log:             log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("printer", cfg.Printer.Type),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
