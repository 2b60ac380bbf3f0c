package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	configs := getConfigs()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(slogger)

	gormDB := mustOpenDB(configs, slogger)

	app, err := cmd.NewCompositionRoot(configs, gormDB, slogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			slogger.Error("Error closing connections", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, slogger)
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	var config cmd.Config
	if err := env.Parse(&config); err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	return config
}

func mustOpenDB(configs cmd.Config, slogger *slog.Logger) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error getting database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	slogger.Info("Connected to database", "url", configs.URL().Redacted())
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, slogger *slog.Logger) {
	e, err := httpin.NewRouter(app.CreateServer(), httpin.RouterConfig{
		Logger:       slogger,
		Gate:         app.AuthorizationGate(),
		TrackLimiter: app.CreateTrackLimiter(),
		TrackLimit:   configs.TrackRateLimit,
	})
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()
	slogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		slogger.Error("Error shutting down web server", "error", err)
	}
}
