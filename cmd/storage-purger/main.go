package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	favoritespostgres "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-api/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge storage")
	}

	ttl := storageTTLFromEnv()
	purged, err := favoritespostgres.NewStorage(db).PurgeStale(ctx, ttl)
	if err != nil {
		log.Fatalf("failed to purge storage: %v", err)
	}
	logger.Info("storage purge completed", slog.Int64("rows", purged), slog.Duration("olderThan", ttl))
}

func storageTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("STORAGE_TTL_HOURS"))
	if raw == "" {
		return favoritespostgres.DefaultStaleAfter
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return favoritespostgres.DefaultStaleAfter
	}
	return time.Duration(hours) * time.Hour
}
