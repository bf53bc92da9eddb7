package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Server        ServerConfig
	Search        SearchConfig
	GeoIndex      GeoIndexConfig
	Cache         CacheConfig
	Heartbeat     HeartbeatConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Elasticsearch ElasticsearchConfig
	Kafka         KafkaConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile        string        `envconfig:"LOG_FILE" default:"./log/search-service.log"`
	InstanceID     string        `envconfig:"INSTANCE_ID"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"2s"`
}

type SearchConfig struct {
	DefaultPageSize     int `envconfig:"SEARCH_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize         int `envconfig:"SEARCH_MAX_PAGE_SIZE" default:"100"`
	CoordinatePrecision int `envconfig:"COORDINATE_PRECISION" default:"4"`
	MaxRadiusMeters     int `envconfig:"SEARCH_MAX_RADIUS_METERS" default:"200000"`
	// MaxResultWindow bounds offset+limit; it matches the index's max_result_window.
	MaxResultWindow     int `envconfig:"SEARCH_MAX_RESULT_WINDOW" default:"10000"`
	OpenNowScanBatch    int `envconfig:"OPEN_NOW_SCAN_BATCH" default:"100"`
	OpenNowScanLimit    int `envconfig:"OPEN_NOW_SCAN_LIMIT" default:"1000"`
}

type GeoIndexConfig struct {
	Backend               string        `envconfig:"GEO_INDEX_BACKEND" default:"elasticsearch"`
	IndexName             string        `envconfig:"GEO_INDEX_NAME" default:"establishments"`
	QueryTimeout          time.Duration `envconfig:"GEO_INDEX_QUERY_TIMEOUT" default:"800ms"`
	RetryBackoff          time.Duration `envconfig:"GEO_INDEX_RETRY_BACKOFF" default:"50ms"`
	MaxConcurrentQueries  int64         `envconfig:"GEO_INDEX_MAX_CONCURRENT_QUERIES" default:"64"`
	MemoryRefreshInterval time.Duration `envconfig:"GEO_INDEX_MEMORY_REFRESH_INTERVAL" default:"1m"`
}

type CacheConfig struct {
	KeyPrefix        string        `envconfig:"CACHE_KEY_PREFIX" default:"search"`
	TTL              time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	LocalTTL         time.Duration `envconfig:"CACHE_LOCAL_TTL" default:"5s"`
	LocalMaxEntries  int           `envconfig:"CACHE_LOCAL_MAX_ENTRIES" default:"10000"`
	CoalesceWait     time.Duration `envconfig:"CACHE_COALESCE_WAIT" default:"500ms"`
	ComputeTimeout   time.Duration `envconfig:"CACHE_COMPUTE_TIMEOUT" default:"2s"`
	OperationTimeout time.Duration `envconfig:"CACHE_OPERATION_TIMEOUT" default:"100ms"`
}

type HeartbeatConfig struct {
	Interval     time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"2s"`
	ProbeTimeout time.Duration `envconfig:"HEARTBEAT_PROBE_TIMEOUT" default:"500ms"`
	Address      string        `envconfig:"HEARTBEAT_ADVERTISED_ADDRESS"`
}

type PostgresConfig struct {
	Host         string `envconfig:"POSTGRES_HOST" required:"true"`
	Port         int    `envconfig:"POSTGRES_PORT" required:"true"`
	User         string `envconfig:"POSTGRES_USER" required:"true"`
	Password     string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName       string `envconfig:"POSTGRES_DB" required:"true"`
	MaxOpenConns int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" required:"true"`
	Port     int    `envconfig:"REDIS_PORT" required:"true"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"100"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD"`
}

type KafkaConfig struct {
	Brokers        []string `envconfig:"KAFKA_BROKERS" required:"true"`
	HeartbeatTopic string   `envconfig:"KAFKA_HEARTBEAT_TOPIC" default:"instance-heartbeats"`
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}
