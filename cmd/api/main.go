package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-service/internal/api/http"
	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/service"
	"github.com/spec-kit/hr-service/internal/worker"
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

	backend, err := persistence.OpenBackend(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer backend.Close()

	store := backend.Store
	dispatcher := events.NewInMemoryDispatcher(logger.Named("events"))
	locker := service.NewKeyedLocker()

	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:   store.Users,
		Dispatcher: dispatcher,
		Locker:     locker,
		Logger:     logger,
	})
	leaveService := service.NewLeaveService(service.LeaveDependencies{
		LeaveRepo:  store.Leaves,
		UserRepo:   store.Users,
		Dispatcher: dispatcher,
		Locker:     locker,
		Logger:     logger,
	})
	timesheetService := service.NewTimesheetService(service.TimesheetDependencies{
		TimesheetRepo: store.Timesheets,
		UserRepo:      store.Users,
		Dispatcher:    dispatcher,
		Locker:        locker,
		Logger:        logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		UserRepo:      store.Users,
		LeaveRepo:     store.Leaves,
		TimesheetRepo: store.Timesheets,
		Logger:        logger,
	})

	if cfg.Store.Seed {
		inserted, err := directoryService.Seed(ctx, service.DefaultUsers())
		if err != nil {
			logger.Fatal("failed to seed directory", zap.Error(err))
		}
		logger.Info("directory seeded", zap.Int("inserted", inserted))
	}

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(directoryService, tokenManager, logger)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, directoryService)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, backend, metrics),
		Users:          handlers.NewUsersHandler(authService, directoryService),
		Leave:          handlers.NewLeaveHandler(leaveService, directoryService),
		Timesheets:     handlers.NewTimesheetsHandler(timesheetService, directoryService),
		Manager:        handlers.NewManagerHandler(directoryService, leaveService, timesheetService, reportService),
		HR:             handlers.NewHRHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
