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
	content := "ELASTICSEARCH_ADDRESSES=http://es:9200\nKAFKA_BROKERS=k1:9092\nFRESHNESS_WINDOW=10s\nPOLL_TARGETS=search-1=10.0.0.1:8080,search-2=10.0.0.2:8080\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	keys := []string{"ELASTICSEARCH_ADDRESSES", "KAFKA_BROKERS", "FRESHNESS_WINDOW", "POLL_TARGETS"}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Registry.FreshnessWindow)
	assert.Equal(t, 10*time.Minute, cfg.Registry.PruneAfter)
	assert.Equal(t, "@every 1m", cfg.Registry.PruneSchedule)
	assert.Equal(t, "instance_heartbeats", cfg.Registry.HistoryIndex)
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "health-registry", cfg.Kafka.ConsumerGroupID)

	targets, err := cfg.Poller.PollTargets()
	require.NoError(t, err)
	assert.Equal(t, []PollTarget{
		{InstanceID: "search-1", Address: "10.0.0.1:8080"},
		{InstanceID: "search-2", Address: "10.0.0.2:8080"},
	}, targets)
}

func TestPollerConfig_PollTargets_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		targets []string
	}{
		{name: "Missing separator", targets: []string{"10.0.0.1:8080"}},
		{name: "Empty id", targets: []string{"=10.0.0.1:8080"}},
		{name: "Empty address", targets: []string{"search-1="}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PollerConfig{Targets: tc.targets}.PollTargets()
			assert.Error(t, err)
		})
	}
}
