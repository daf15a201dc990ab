package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-kit/itsm-service/internal/api/http"
	"github.com/helpdesk-kit/itsm-service/internal/api/http/handlers"
	"github.com/helpdesk-kit/itsm-service/internal/auth"
	"github.com/helpdesk-kit/itsm-service/internal/config"
	"github.com/helpdesk-kit/itsm-service/internal/events"
	"github.com/helpdesk-kit/itsm-service/internal/observability"
	"github.com/helpdesk-kit/itsm-service/internal/persistence"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	"github.com/helpdesk-kit/itsm-service/internal/service"
	"github.com/helpdesk-kit/itsm-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		pg         *persistence.Postgres
		redis      *persistence.Redis
		allocator  repository.IDAllocator
		userRepo   repository.UserRepository
		ticketRepo repository.TicketRepository
		assetRepo  repository.AssetRepository
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()

		pool := pg.PoolHandle()
		allocator = repository.NewIDAllocator(pool)
		userRepo = repository.NewUserRepository(pool)
		ticketRepo = repository.NewTicketRepository(pool)
		assetRepo = repository.NewAssetRepository(pool)

		if !cfg.Storage.TicketCacheDisabled {
			ticketRepo = repository.NewCachedTicketRepository(ticketRepo, redis.Client, cfg.Storage.TicketCacheTTL(), logger)
		}
	case config.StorageDriverMemory:
		logger.Warn("memory storage driver active; records will not survive a restart")
		allocator = repository.NewMemoryIDAllocator()
		userRepo = repository.NewMemoryUserRepository()
		ticketRepo = repository.NewMemoryTicketRepository()
		assetRepo = repository.NewMemoryAssetRepository()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	gate := auth.NewGate(userRepo)
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	claimMiddleware := auth.NewClaimMiddleware(tokenManager)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:     userRepo,
		Allocator:    allocator,
		Gate:         gate,
		TokenManager: tokenManager,
		Dispatcher:   dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Allocator:  allocator,
		Gate:       gate,
		Dispatcher: dispatcher,
	})
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo:  assetRepo,
		UserRepo:   userRepo,
		Allocator:  allocator,
		Gate:       gate,
		Dispatcher: dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:           handlers.NewUsersHandler(userService),
		Tickets:         handlers.NewTicketsHandler(ticketService),
		Assets:          handlers.NewAssetsHandler(assetService),
		ClaimMiddleware: claimMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
