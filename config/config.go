package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int
	LogLevel   slog.Level

	StorageDriver string
	DataFile      string
	DatabaseURL   string
	SQLitePath    string

	FormationVariant string
	FormationsFile   string

	StaticDir          string
	CORSAllowedOrigins []string
	MetricsEnabled     bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// ArchiveEnabled reports whether every R2 setting needed to archive exports is present.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level, err := parseLogLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := boolEnv("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort: port,
		LogLevel:   level,

		StorageDriver: strings.ToLower(envOrDefault("STORAGE_DRIVER", StorageFile)),
		DataFile:      envOrDefault("DATA_FILE", "players.json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    envOrDefault("SQLITE_PATH", "pelada.db"),

		FormationVariant: strings.ToLower(envOrDefault("FORMATION_VARIANT", "a")),
		FormationsFile:   os.Getenv("FORMATIONS_FILE"),

		StaticDir:          envOrDefault("STATIC_DIR", "static"),
		CORSAllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled:     metricsEnabled,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	switch cfg.StorageDriver {
	case StorageFile, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (expected file, postgres or sqlite)", cfg.StorageDriver)
	}

	if cfg.FormationVariant != "a" && cfg.FormationVariant != "b" {
		return nil, fmt.Errorf("FORMATION_VARIANT must be 'a' or 'b', got %q", cfg.FormationVariant)
	}

	return cfg, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return val, nil
}

func boolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return val, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
