package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"docshare/internal/config"
	"docshare/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop the gateway's tables before creating them (fresh start)")
	clearData := flag.Bool("clear-data", false, "Delete all saved view states (keep schema)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// Destructive operations are never allowed in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: --drop-tables and --clear-data cannot run in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	logger.Info("schema tool starting",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
	)

	if *dropTables {
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		logger.Info("tables dropped", "view_states", tables.ViewStates)
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	logger.Info("schema ready", "view_states", tables.ViewStates)

	if *clearData {
		n, err := postgres.ClearViewStates(ctx, pool, tables)
		if err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		logger.Info("view states cleared", "rows", n)
	}
}
