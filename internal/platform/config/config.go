package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	ImportBatchSize         int
	ImportAtomicity         domain.AtomicityStrategy
	ImportMaxConcurrentJobs int
	ImportMaxUploadBytes    int64
	ImportRateLimit         string

	CORSAllowedOrigins []string
	PosthogAPIKey      string
	ShutdownTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "transactions.db")
	v.SetDefault("IMPORT_BATCH_SIZE", 100)
	v.SetDefault("IMPORT_ATOMICITY", string(domain.AtomicityStreaming))
	v.SetDefault("IMPORT_MAX_CONCURRENT_JOBS", 0)
	v.SetDefault("IMPORT_MAX_UPLOAD_BYTES", 32<<20)
	v.SetDefault("IMPORT_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:           strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:             v.GetString("PGSQL_URL"),
		SQLitePath:              v.GetString("SQLITE_PATH"),
		ImportBatchSize:         v.GetInt("IMPORT_BATCH_SIZE"),
		ImportMaxConcurrentJobs: v.GetInt("IMPORT_MAX_CONCURRENT_JOBS"),
		ImportMaxUploadBytes:    v.GetInt64("IMPORT_MAX_UPLOAD_BYTES"),
		ImportRateLimit:         v.GetString("IMPORT_RATE_LIMIT"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:           v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverSQLite:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER %q. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}

	if cfg.ImportBatchSize <= 0 {
		log.Printf("Warning: invalid IMPORT_BATCH_SIZE (%d). Defaulting to 100.\n", cfg.ImportBatchSize)
		cfg.ImportBatchSize = 100
	}

	atomicity, err := domain.ParseAtomicityStrategy(v.GetString("IMPORT_ATOMICITY"))
	if err != nil {
		log.Printf("Warning: %v. Defaulting to %s.\n", err, domain.AtomicityStreaming)
		atomicity = domain.AtomicityStreaming
	}
	cfg.ImportAtomicity = atomicity

	if cfg.ImportMaxUploadBytes <= 0 {
		cfg.ImportMaxUploadBytes = 32 << 20
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdownTimeout, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdownTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdownTimeout)
	}
	cfg.ShutdownTimeout = shutdownTimeout

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
