package config

import (
	"os"
	"strconv"
	"time"

	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig
	Redis     RedisConfig
	Engine    EngineConfig
	Telemetry TelemetryConfig

	// AbilityData is a definitions file; empty uses the embedded defaults
	AbilityData  string
	TickInterval time.Duration
	LogLevel     string
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string // Optional: enables the Discord message sink
	Channel string // Channel that receives room and broadcast lines
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL      string // Takes precedence over Addr when set
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis connection was configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

// EngineConfig holds the ability engine's tuning knobs
type EngineConfig struct {
	PointsAtMaxLevel  float64
	BaseLevelCap      int
	DamagePerPoint    float64
	RestorePerPoint   float64
	BuffTicksPerPoint float64
}

// DefaultEngineConfig returns the tuning used when nothing is configured
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		PointsAtMaxLevel:  50,
		BaseLevelCap:      100,
		DamagePerPoint:    1.0,
		RestorePerPoint:   2.0,
		BuffTicksPerPoint: 0.5,
	}
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	defaults := DefaultEngineConfig()

	cfg := &Config{
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			Channel: os.Getenv("DISCORD_CHANNEL_ID"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Engine: EngineConfig{
			PointsAtMaxLevel:  getEnvAsFloatOrDefault("POINTS_AT_MAX_LEVEL", defaults.PointsAtMaxLevel),
			BaseLevelCap:      getEnvAsIntOrDefault("BASE_LEVEL_CAP", defaults.BaseLevelCap),
			DamagePerPoint:    getEnvAsFloatOrDefault("DAMAGE_PER_POINT", defaults.DamagePerPoint),
			RestorePerPoint:   getEnvAsFloatOrDefault("RESTORE_PER_POINT", defaults.RestorePerPoint),
			BuffTicksPerPoint: getEnvAsFloatOrDefault("BUFF_TICKS_PER_POINT", defaults.BuffTicksPerPoint),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBoolOrDefault("OTEL_ENABLED", false),
			ServiceName: getEnvOrDefault("OTEL_SERVICE_NAME", "abilityd"),
		},
		AbilityData:  os.Getenv("ABILITY_DATA"),
		TickInterval: getEnvAsDurationOrDefault("TICK_INTERVAL", 5*time.Second),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Validate
	if cfg.Engine.PointsAtMaxLevel <= 0 {
		return nil, abilerr.InvalidArgument("POINTS_AT_MAX_LEVEL must be positive")
	}
	if cfg.Engine.BaseLevelCap <= 0 {
		return nil, abilerr.InvalidArgument("BASE_LEVEL_CAP must be positive")
	}
	if cfg.TickInterval <= 0 {
		return nil, abilerr.InvalidArgument("TICK_INTERVAL must be positive")
	}
	if cfg.Discord.Token != "" && cfg.Discord.Channel == "" {
		return nil, abilerr.InvalidArgument("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
