package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort            int
	ProxyURL           string
	CachePath          string
	CacheTTL           time.Duration
	ProvidersFilePath  string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(getEnv("APP_PORT"))
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnvDefault("CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}
	ratePerSecond, err := strconv.ParseFloat(getEnvDefault("RATE_LIMIT_PER_SECOND", "5"), 64)
	if err != nil {
		return nil, err
	}
	rateBurst, err := strconv.Atoi(getEnvDefault("RATE_LIMIT_BURST", "2"))
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:            appPort,
		ProxyURL:           os.Getenv("PROXY_URL"),
		CachePath:          getEnvDefault("CACHE_PATH", "data/search_cache.db"),
		CacheTTL:           cacheTTL,
		ProvidersFilePath:  os.Getenv("PROVIDERS_FILE"),
		RateLimitPerSecond: ratePerSecond,
		RateLimitBurst:     rateBurst,
	}, nil
}

func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func getEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// EnvCredentials resolves provider credentials from the environment at
// dispatch time, e.g. GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID.
type EnvCredentials struct{}

func (EnvCredentials) APIKey(provider string) string {
	return os.Getenv(envName(provider) + "_API_KEY")
}

func (EnvCredentials) SearchEngineID(provider string) string {
	return os.Getenv(envName(provider) + "_SEARCH_ENGINE_ID")
}

func envName(provider string) string {
	return strings.ToUpper(strings.ReplaceAll(provider, "-", "_"))
}
