package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Suya12/cloud-computing-project/internal/app"
	"github.com/Suya12/cloud-computing-project/internal/clock"
	"github.com/Suya12/cloud-computing-project/internal/config"
	"github.com/Suya12/cloud-computing-project/internal/storage/postgres"
	transporthttp "github.com/Suya12/cloud-computing-project/internal/transport/http"
	"github.com/Suya12/cloud-computing-project/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	clk := clock.NewSystem()

	notificationRepo := postgres.NewNotificationRepository(pool)
	notificationSvc := app.NewNotificationService(notificationRepo, clk, logger)

	orderRepo := postgres.NewOrderRepository(pool)
	orderSvc := app.NewOrderService(orderRepo, clk, logger,
		app.WithMatchWindow(cfg.MatchWindow),
		app.WithListRadius(cfg.ListRadiusMeters),
	)
	matchSvc := app.NewMatchService(orderRepo, clk, notificationSvc, logger)

	cartSvc := app.NewCartService(postgres.NewCartRepository(pool))
	creditSvc := app.NewCreditService(postgres.NewCreditRepository(pool))
	userSvc := app.NewUserService(postgres.NewUserRepository(pool))
	storeSvc := app.NewStoreService(postgres.NewStoreRepository(pool))

	sweeper := app.NewSweeper(orderRepo, clk, notificationSvc, logger,
		app.WithSweepInterval(cfg.SweepInterval),
	)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("start sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	mux := transporthttp.NewMux(transporthttp.Services{
		Orders:        orderSvc,
		Match:         matchSvc,
		Cart:          cartSvc,
		Credit:        creditSvc,
		Users:         userSvc,
		Stores:        storeSvc,
		Notifications: notificationSvc,
	})
	handler := transporthttp.RequestLogger(transporthttp.CORS(parseCSV(cfg.CORSOrigins), mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
