package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"photoframe/database"
	"photoframe/infrastructure/photoclient"
	"photoframe/logging"
	"photoframe/platform/notifier"
)

// AppConfig holds application-wide system configuration.
type AppConfig struct {
	HTTPAddr    string
	HTTPLogPath string

	// StatusEnabled selects the status-aware grid variant.
	StatusEnabled       bool
	AutoRefreshInterval time.Duration
	DiagnosticRetention time.Duration

	Backend  *photoclient.Config
	Toasts   *notifier.Config
	Database *database.Config
	Logging  *logging.Config
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr:            getEnvWithDefault("HTTP_ADDR", ":8080"),
		HTTPLogPath:         getEnvWithDefault("HTTP_LOG_PATH", ""),
		StatusEnabled:       getEnvBoolWithDefault("PHOTO_STATUS_ENABLED", true),
		AutoRefreshInterval: getEnvDurationWithDefault("AUTO_REFRESH_INTERVAL", 60*time.Second),
		DiagnosticRetention: getEnvDurationWithDefault("DIAGNOSTIC_RETENTION", 7*24*time.Hour),
		Backend:             LoadBackendConfigFromEnv(),
		Toasts:              LoadToastConfigFromEnv(),
		Database:            LoadDatabaseConfigFromEnv(),
		Logging:             LoadLoggingConfigFromEnv(),
	}
}

// LoadBackendConfigFromEnv loads photo backend client configuration from environment variables.
func LoadBackendConfigFromEnv() *photoclient.Config {
	return &photoclient.Config{
		BaseURL: strings.TrimRight(getEnvWithDefault("BACKEND_URL", "http://localhost:5000"), "/"),
		Timeout: getEnvDurationWithDefault("BACKEND_TIMEOUT", 30*time.Second),
	}
}

// LoadToastConfigFromEnv loads notification timing from environment variables.
func LoadToastConfigFromEnv() *notifier.Config {
	defaults := notifier.DefaultConfig()
	return &notifier.Config{
		MaxVisible: getEnvIntWithDefault("TOAST_MAX_VISIBLE", defaults.MaxVisible),
		Dwell:      getEnvDurationWithDefault("TOAST_DWELL", defaults.Dwell),
		Linger:     getEnvDurationWithDefault("TOAST_LINGER", defaults.Linger),
	}
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables.
func LoadDatabaseConfigFromEnv() *database.Config {
	return &database.Config{
		Path:              getEnvWithDefault("DB_PATH", "./photoframe.db"),
		MaxOpenConns:      getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:      getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:   getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime:   getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
		BusyTimeoutMs:     getEnvIntWithDefault("DB_BUSY_TIMEOUT_MS", 5000),
		EnableForeignKeys: getEnvBoolWithDefault("DB_ENABLE_FOREIGN_KEYS", true),
		EnableWAL:         getEnvBoolWithDefault("DB_ENABLE_WAL", true),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "info"),
		Format: getEnvWithDefault("LOG_FORMAT", "json"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stdout"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
