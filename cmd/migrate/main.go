// Command migrate applies the embedded SQL migrations of the shipment store.
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"shipping/cmd"
	"shipping/internal/adapters/out/postgres/migrations"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
)

type migrateConfig struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"shipping"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	var mc migrateConfig
	if err := env.Parse(&mc); err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	config := cmd.Config{
		DBHost:     mc.DBHost,
		DBPort:     mc.DBPort,
		DBUser:     mc.DBUser,
		DBPassword: mc.DBPassword,
		DBName:     mc.DBName,
		DBSslMode:  mc.DBSslMode,
	}

	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}
	if len(applied) == 0 {
		log.Info("Schema is up to date")
		return
	}
	for _, version := range applied {
		log.Infof("Applied %s", version)
	}
}
