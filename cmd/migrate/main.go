package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"file-researcher/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	var (
		databaseURL string
		source      string
		up          bool
		down        bool
	)

	flag.StringVar(&databaseURL, "database", "", "Database connection URL, read from DB_* variables when empty")
	flag.StringVar(&source, "source", "db/migrations", "Path to migrations directory")
	flag.BoolVar(&up, "up", false, "Run up migrations")
	flag.BoolVar(&down, "down", false, "Run down migrations")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if up == down {
		logger.Error("exactly one of -up or -down is required")
		os.Exit(2)
	}

	if databaseURL == "" {
		var cfg config.DatabaseConfig
		if err := envconfig.Process("", &cfg); err != nil {
			logger.Error("failed to load database config", "error", err)
			os.Exit(1)
		}
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode)
	}

	if err := run(databaseURL, source, up); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(databaseURL, source string, up bool) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", source), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	direction := "up"
	apply := m.Up
	if !up {
		direction = "down"
		apply = m.Down
	}

	slog.Info("running migrations", "direction", direction, "source", source)
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no migrations to apply", "direction", direction)
			return nil
		}
		return fmt.Errorf("failed to run %s migrations: %w", direction, err)
	}
	slog.Info("migrations completed", "direction", direction)
	return nil
}
