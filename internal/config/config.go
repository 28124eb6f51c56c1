package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	MedicationStoreURL string
	Port               string
	LogLevel           slog.Level
	Redis              *RedisConfig
	MealTimes          *MealTimeConfig
	Scheduling         *SchedulingConfig
	Delivery           DeliveryConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	mealTimes, err := LoadMealTimeConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		MedicationStoreURL: os.Getenv("MEDICATION_STORE_URL"),
		Port:               port,
		LogLevel:           parseLogLevel(os.Getenv("LOG_LEVEL")),
		Redis:              redisConfig,
		MealTimes:          mealTimes,
		Scheduling:         LoadSchedulingConfig(),
		Delivery:           LoadDeliveryConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
