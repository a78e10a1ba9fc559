package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/case-service/internal/api/http"
	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/observability"
	"github.com/spec-kit/case-service/internal/persistence"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/service"
	"github.com/spec-kit/case-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	caseUpdateRepo := repository.NewCaseUpdateRepository(pool)

	sessions := auth.NewSessionStore(redis.Client, cfg.Auth.SessionTTL())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())

	accountService := service.NewAccountService(service.AccountDependencies{
		AccountRepo: accountRepo,
		Sessions:    sessions,
		Tokens:      tokens,
		BcryptCost:  cfg.Auth.BcryptCost,
		Logger:      logger,
	})
	if err := accountService.EnsureSeedStaff(ctx, cfg.Seed.StaffUsername, cfg.Seed.StaffPassword); err != nil {
		logger.Fatal("failed to seed staff account", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		CaseRepo:       caseRepo,
		CaseUpdateRepo: caseUpdateRepo,
		Dispatcher:     dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(tokens, sessions, accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Cases:          handlers.NewCasesHandler(lifecycleService),
		StaffCases:     handlers.NewStaffCasesHandler(lifecycleService),
		AuthMiddleware: authMiddleware,
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
