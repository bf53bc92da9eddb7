package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "POSTGRES_HOST=db\nPOSTGRES_PORT=5432\nPOSTGRES_USER=search\nPOSTGRES_PASSWORD=secret\nPOSTGRES_DB=establishments\n" +
		"REDIS_HOST=cache\nREDIS_PORT=6379\nKAFKA_BROKERS=k1:9092,k2:9092\nCACHE_TTL=45s\nGEO_INDEX_BACKEND=postgis\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	keys := []string{"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "REDIS_HOST", "REDIS_PORT", "KAFKA_BROKERS", "CACHE_TTL", "GEO_INDEX_BACKEND"}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 45*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "postgis", cfg.GeoIndex.Backend)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Search.CoordinatePrecision)
	assert.Equal(t, 10000, cfg.Search.MaxResultWindow)
	assert.Equal(t, 5*time.Second, cfg.Cache.LocalTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Cache.CoalesceWait)
	assert.Equal(t, 2*time.Second, cfg.Heartbeat.Interval)
	assert.Equal(t, "instance-heartbeats", cfg.Kafka.HeartbeatTopic)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
