package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment     string
	AppName         string
	Port            string
	LogLevel        slog.Level
	YAMLSourcesPath string
	SourceTimeout   time.Duration
	MonitorEnabled  bool
	MonitorMinutes  int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:     getEnv("APP_ENV", "development"),
		AppName:         getEnv("APP_NAME", "animerge"),
		Port:            getEnv("APP_PORT", "8080"),
		YAMLSourcesPath: getEnv("YAML_SOURCES_PATH", "./sources.d"),
		MonitorEnabled:  getEnvAsBool("MONITOR_ENABLED", true),
		MonitorMinutes:  getEnvAsInt("MONITOR_MINUTES", 30),
	}

	if cfg.MonitorMinutes <= 0 {
		cfg.MonitorMinutes = 30
	}

	timeoutSeconds := getEnvAsInt("SOURCE_TIMEOUT_SECONDS", 12)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 12
	}
	cfg.SourceTimeout = time.Duration(timeoutSeconds) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "INFO"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q, expected DEBUG|INFO|WARN|ERROR", raw)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
