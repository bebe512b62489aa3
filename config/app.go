package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultHotelTimezone      = "Asia/Kolkata"
	defaultOverstayHourlyRate = "200"
)

// AppConfig holds runtime settings that are not database connection details.
type AppConfig struct {
	Port               string
	CorsOrigins        []string
	LogLevel           string
	HotelLocation      *time.Location
	OverstayHourlyRate decimal.Decimal
	RedisAddress       string
}

// LoadEnv reads .env when present. Missing files are not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		GetLogger().Debug(".env not found; continuing with environment variables")
	}
}

func LoadAppConfig() (AppConfig, error) {
	cfg := AppConfig{
		Port:         envOrDefault("PORT", "8080"),
		CorsOrigins:  parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		RedisAddress: strings.TrimSpace(os.Getenv("REDIS_ADDRESS")),
	}

	tz := envOrDefault("HOTEL_TIMEZONE", defaultHotelTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid HOTEL_TIMEZONE %q: %w", tz, err)
	}
	cfg.HotelLocation = loc

	rawRate := envOrDefault("OVERSTAY_HOURLY_RATE", defaultOverstayHourlyRate)
	rate, err := decimal.NewFromString(rawRate)
	if err != nil {
		return cfg, fmt.Errorf("invalid OVERSTAY_HOURLY_RATE %q: %w", rawRate, err)
	}
	if rate.IsNegative() {
		return cfg, fmt.Errorf("OVERSTAY_HOURLY_RATE must not be negative")
	}
	cfg.OverstayHourlyRate = rate

	return cfg, nil
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
