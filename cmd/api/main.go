package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/heavyrent/backend/api/routes"
	"github.com/heavyrent/backend/internal/documents"
	"github.com/heavyrent/backend/internal/equipment"
	"github.com/heavyrent/backend/internal/maintenance"
	"github.com/heavyrent/backend/internal/notifications"
	"github.com/heavyrent/backend/internal/payments"
	"github.com/heavyrent/backend/internal/rentals"
	"github.com/heavyrent/backend/internal/schedules"
	"github.com/heavyrent/backend/internal/staff"
	"github.com/heavyrent/backend/pkg/config"
	"github.com/heavyrent/backend/pkg/db"
	"github.com/heavyrent/backend/pkg/logger"
	"github.com/heavyrent/backend/pkg/mailer"
	"github.com/heavyrent/backend/pkg/metrics"
	"github.com/heavyrent/backend/pkg/migrate"
	"github.com/heavyrent/backend/pkg/redis"
	"github.com/heavyrent/backend/pkg/storage/local"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	blobs, err := local.New(cfg.Documents.StorageDir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare document storage", err)
		os.Exit(1)
	}

	var mail mailer.Sender
	if sender := mailer.NewSendgridSender(cfg.Sendgrid); sender != nil {
		mail = sender
	}

	conn := dbClient.DB()
	rentalsRepo := rentals.NewRepository(conn)
	equipmentRepo := equipment.NewRepository(conn)
	documentsRepo := documents.NewRepository(conn)
	paymentsRepo := payments.NewRepository(conn)
	maintenanceRepo := maintenance.NewRepository(conn)
	schedulesRepo := schedules.NewRepository(conn)
	notificationsRepo := notifications.NewRepository(conn)
	staffRepo := staff.NewRepository(conn)

	notificationsSvc, err := notifications.NewService(notificationsRepo, mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	rentalsSvc, err := rentals.NewService(rentalsRepo, dbClient, rentals.NewEquipmentGate(), notificationsSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create rentals service", err)
		os.Exit(1)
	}

	equipmentSvc, err := equipment.NewService(equipmentRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create equipment service", err)
		os.Exit(1)
	}

	documentsSvc, err := documents.NewService(documentsRepo, rentalsRepo, blobs, cfg.Documents.MaxUploadBytes())
	if err != nil {
		logg.Error(context.Background(), "failed to create documents service", err)
		os.Exit(1)
	}

	paymentsSvc, err := payments.NewService(paymentsRepo, rentalsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	maintenanceSvc, err := maintenance.NewService(maintenanceRepo, equipmentRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create maintenance service", err)
		os.Exit(1)
	}

	schedulesSvc, err := schedules.NewService(schedulesRepo, rentalsRepo, staffRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create schedules service", err)
		os.Exit(1)
	}

	if err := staff.EnsureDefaultAdmin(context.Background(), staffRepo, cfg, logg); err != nil {
		logg.Error(context.Background(), "failed to bootstrap admin account", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, httpMetrics, dbClient, redisClient, redisClient, routes.Services{
			Rentals:       rentalsSvc,
			Equipment:     equipmentSvc,
			Documents:     documentsSvc,
			Payments:      paymentsSvc,
			Maintenance:   maintenanceSvc,
			Notifications: notificationsSvc,
			Schedules:     schedulesSvc,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
