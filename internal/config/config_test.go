package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("BREAKDOWN_CONCURRENCY", "")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 8, cfg.BreakdownConcurrency)
	assert.Equal(t, cfg.SQLitePath, cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/inv")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("USE_CACHE", "1")
	t.Setenv("CACHE_TTL", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://u:p@localhost:5432/inv", cfg.DSN())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, 300, cfg.CacheTTL)
}
