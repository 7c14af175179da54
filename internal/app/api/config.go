package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	favoritesapp "github.com/Apurer/storefront-api/internal/domains/favorites/application"
	platformpostgres "github.com/Apurer/storefront-api/internal/platform/postgres"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string
	PostgresDSN        string
	PostgresDriver     string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	CORSAllowedOrigins []string
	FavoritesNamespace string
	FavoritesCacheSize int
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		PostgresDriver:     strings.ToLower(envDefault("POSTGRES_DRIVER", platformpostgres.DriverPGX)),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		FavoritesNamespace: envDefault("FAVORITES_NAMESPACE", favoritesapp.DefaultNamespace),
	}
	cacheSize, err := strconv.Atoi(envDefault("FAVORITES_CACHE_SIZE", strconv.Itoa(favoritesapp.DefaultCacheSize)))
	if err != nil || cacheSize <= 0 {
		return Config{}, fmt.Errorf("FAVORITES_CACHE_SIZE must be a positive integer")
	}
	cfg.FavoritesCacheSize = cacheSize
	switch cfg.PostgresDriver {
	case platformpostgres.DriverPGX, platformpostgres.DriverPQ:
	default:
		return Config{}, fmt.Errorf("POSTGRES_DRIVER must be %q or %q", platformpostgres.DriverPGX, platformpostgres.DriverPQ)
	}
	if strings.Contains(cfg.FavoritesNamespace, ":") {
		return Config{}, fmt.Errorf("FAVORITES_NAMESPACE must not contain ':'")
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
