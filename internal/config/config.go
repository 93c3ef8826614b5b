package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Server    ServerConfig
	Sources   SourcesConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Log       LogConfig
	Search    SearchConfig
}

type ServerConfig struct {
	Port string
}

// SourcesConfig holds the endpoint of each backing catalog. Declaration
// order here is the merge order of search results.
type SourcesConfig struct {
	Martello string
	Prodexa  string
	Storenta string
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret string
}

type TelemetryConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

type SearchConfig struct {
	SourceTimeout time.Duration
	PriceMax      float64
}

// Load reads configuration from the environment, substituting the reference
// system's defaults. Only the JWT secret is mandatory.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8085"),
		},
		Sources: SourcesConfig{
			Martello: getEnvOrDefault("MARTELLO_API", "https://martello.onrender.com/api/products"),
			Prodexa:  getEnvOrDefault("PRODEXA_API", "https://prodexa.onrender.com/api/products"),
			Storenta: getEnvOrDefault("STORENTA_API", "https://storenta.onrender.com/api/products"),
		},
		Redis: RedisConfig{
			URL: getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Telemetry: TelemetryConfig{
			BaseURL: os.Getenv("TELEMETRY_API"),
			Timeout: getDurationOrDefault("TELEMETRY_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Search: SearchConfig{
			SourceTimeout: getDurationOrDefault("SOURCE_TIMEOUT", 10*time.Second),
			PriceMax:      getFloatOrDefault("PRICE_MAX", 2000),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
