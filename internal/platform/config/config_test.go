package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/SscSPs/transaction_analyzer/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("IMPORT_ATOMICITY", "")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 100, cfg.ImportBatchSize)
	assert.Equal(t, domain.AtomicityStreaming, cfg.ImportAtomicity)
	assert.Equal(t, config.StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/analyzer.db")
	t.Setenv("IMPORT_BATCH_SIZE", "250")
	t.Setenv("IMPORT_ATOMICITY", "transactional")
	t.Setenv("IMPORT_MAX_CONCURRENT_JOBS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/analyzer.db", cfg.SQLitePath)
	assert.Equal(t, 250, cfg.ImportBatchSize)
	assert.Equal(t, domain.AtomicityTransactional, cfg.ImportAtomicity)
	assert.Equal(t, 4, cfg.ImportMaxConcurrentJobs)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("IMPORT_BATCH_SIZE", "0")
	t.Setenv("IMPORT_ATOMICITY", "sometimes")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 100, cfg.ImportBatchSize)
	assert.Equal(t, domain.AtomicityStreaming, cfg.ImportAtomicity)
}
