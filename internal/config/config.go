// README: Config loader with env defaults for HTTP, providers, Redis, and optional Postgres.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	DB struct {
		// DSN is optional; when empty the NLU usage log is disabled.
		DSN string
	}
	NLU struct {
		GeminiKey string
	}
	Transit struct {
		// Provider selects the transit backend: "mvg" or "google".
		Provider string
		BaseURL  string
		MapsKey  string
		// Timezone used when rendering departure and arrival times.
		Timezone string
		// CacheTTLMinutes bounds how long location lookups stay cached.
		CacheTTLMinutes int
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("MVGBOT_HTTP_ADDR", ":3978")
	cfg.Redis.Addr = envOrDefault("MVGBOT_REDIS_ADDR", "localhost:6379")
	cfg.DB.DSN = envOrDefault("MVGBOT_DB_DSN", "")
	cfg.NLU.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.Transit.Provider = envOrDefault("MVGBOT_TRANSIT_PROVIDER", "mvg")
	cfg.Transit.BaseURL = envOrDefault("MVGBOT_MVG_BASE_URL", "https://www.mvg.de/api/fahrinfo")
	cfg.Transit.MapsKey = envOrDefault("MAPS_API_KEY", "")
	cfg.Transit.Timezone = envOrDefault("MVGBOT_TIMEZONE", "Europe/Berlin")
	cfg.Transit.CacheTTLMinutes = envOrDefaultInt("MVGBOT_LOCATION_CACHE_TTL_MIN", 1440)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
