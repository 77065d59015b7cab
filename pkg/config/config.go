package config

import (
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Platform PlatformConfig
	Cache    CacheConfig
	Health   HealthConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Ads platform API settings
type PlatformConfig struct {
	APIURL             string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

// Snapshot cache settings
type CacheConfig struct {
	TTL time.Duration
}

// Health classification thresholds
type HealthConfig struct {
	SpendFloor      float64
	ClickFloor      float64
	CTRFloor        float64
	ImpressionFloor float64
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Platform: PlatformConfig{
			APIURL:             getEnv("ADS_API_URL", ""),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 100),
		},
		Cache: CacheConfig{
			TTL: getDurationEnv("SNAPSHOT_TTL", "5m"),
		},
		Health: HealthConfig{
			SpendFloor:      getFloatEnv("HEALTH_SPEND_FLOOR", 50),
			ClickFloor:      getFloatEnv("HEALTH_CLICK_FLOOR", 10),
			CTRFloor:        getFloatEnv("HEALTH_CTR_FLOOR", 1),
			ImpressionFloor: getFloatEnv("HEALTH_IMPRESSION_FLOOR", 1000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
