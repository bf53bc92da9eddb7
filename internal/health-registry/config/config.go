package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Server        ServerConfig
	Registry      RegistryConfig
	Poller        PollerConfig
	Elasticsearch ElasticsearchConfig
	Kafka         KafkaConfig
}

type ServerConfig struct {
	Port     string `envconfig:"SERVER_PORT" default:"8090"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"./log/health-registry.log"`
}

type RegistryConfig struct {
	FreshnessWindow time.Duration `envconfig:"FRESHNESS_WINDOW" default:"6s"`
	PruneAfter      time.Duration `envconfig:"PRUNE_AFTER" default:"10m"`
	PruneSchedule   string        `envconfig:"PRUNE_SCHEDULE" default:"@every 1m"`
	// HeartbeatInterval weights the first heartbeat of an instance in uptime history.
	HeartbeatInterval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"2s"`
	HistoryIndex      string        `envconfig:"HEARTBEAT_HISTORY_INDEX" default:"instance_heartbeats"`
	HistoryTimeout    time.Duration `envconfig:"HEARTBEAT_HISTORY_TIMEOUT" default:"2s"`
}

type PollerConfig struct {
	// Targets lists instances to poll as id=host:port pairs.
	Targets        []string      `envconfig:"POLL_TARGETS"`
	Interval       time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	HealthEndpoint string        `envconfig:"POLL_HEALTH_ENDPOINT" default:"/healthz"`
	RequestTimeout time.Duration `envconfig:"POLL_REQUEST_TIMEOUT" default:"1s"`
	MaxRetries     int           `envconfig:"POLL_MAX_RETRIES" default:"3"`
	InitialBackoff time.Duration `envconfig:"POLL_INITIAL_BACKOFF" default:"100ms"`
	RateLimit      float64       `envconfig:"POLL_RATE_LIMIT" default:"20"`
	Burst          int           `envconfig:"POLL_BURST" default:"5"`
	Concurrency    int           `envconfig:"POLL_CONCURRENCY" default:"8"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES" required:"true"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD"`
}

type KafkaConfig struct {
	Brokers         []string `envconfig:"KAFKA_BROKERS" required:"true"`
	HeartbeatTopic  string   `envconfig:"KAFKA_HEARTBEAT_TOPIC" default:"instance-heartbeats"`
	ConsumerGroupID string   `envconfig:"KAFKA_CONSUMER_GROUP_ID" default:"health-registry"`
	ConsumerCnt     int      `envconfig:"KAFKA_CONSUMER_CNT" default:"1"`
}

type PollTarget struct {
	InstanceID string
	Address    string
}

// PollTargets parses Targets.
func (c PollerConfig) PollTargets() ([]PollTarget, error) {
	targets := make([]PollTarget, 0, len(c.Targets))
	for _, raw := range c.Targets {
		id, addr, ok := strings.Cut(strings.TrimSpace(raw), "=")
		if !ok || id == "" || addr == "" {
			return nil, fmt.Errorf("PollerConfig.PollTargets: invalid target %q, expected id=host:port", raw)
		}
		targets = append(targets, PollTarget{InstanceID: id, Address: addr})
	}
	return targets, nil
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}
