package config

import (
	"fmt"
	"time"

	"github.com/soltixdb/insight/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Source   SourceConfig   `mapstructure:"source"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Etcd     EtcdConfig     `mapstructure:"etcd"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  logging.Config `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// SourceConfig points at the SoltixDB query API the series are fetched from
type SourceConfig struct {
	BaseURL  string        `mapstructure:"base_url"` // e.g. http://localhost:5555
	Database string        `mapstructure:"database"` // SoltixDB database holding telemetry
	APIKey   string        `mapstructure:"api_key"`  // Optional X-API-Key for the backend
	Timeout  time.Duration `mapstructure:"timeout"`  // Per-fetch timeout
}

// CacheConfig configures the optional Redis series cache in front of
// the source
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	URL      string        `mapstructure:"url"`      // redis address, host:port
	Password string        `mapstructure:"password"` // Optional authentication
	DB       int           `mapstructure:"db"`       // Redis database number
	TTL      time.Duration `mapstructure:"ttl"`      // Cached series lifetime
}

// EtcdConfig configures the field-registry backend
type EtcdConfig struct {
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
}

// AlertsConfig configures anomaly-event publishing
type AlertsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Type          string `mapstructure:"type"`           // nats (default), redis, kafka, memory
	URL           string `mapstructure:"url"`            // Broker URL
	Username      string `mapstructure:"username"`       // Optional authentication
	Password      string `mapstructure:"password"`       // Optional authentication
	SubjectPrefix string `mapstructure:"subject_prefix"` // Event subject/topic prefix

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`
	RedisStream string `mapstructure:"redis_stream"`

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

// AnalysisConfig holds engine defaults applied when requests omit them
type AnalysisConfig struct {
	MaxConcurrency int     `mapstructure:"max_concurrency"` // Parallel field analyses per request
	MaxResults     int     `mapstructure:"max_results"`     // Default anomaly list cap
	MinCorrelation float64 `mapstructure:"min_correlation"` // Default correlation filter
}

// AuthConfig represents API key authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"api_keys"`
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.Database == "" {
		return fmt.Errorf("source.database is required")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.Analysis.MaxConcurrency <= 0 {
		return fmt.Errorf("analysis.max_concurrency must be positive, got %d", c.Analysis.MaxConcurrency)
	}
	if c.Analysis.MinCorrelation < 0 || c.Analysis.MinCorrelation > 1 {
		return fmt.Errorf("analysis.min_correlation must be in [0,1], got %f", c.Analysis.MinCorrelation)
	}
	if c.Cache.Enabled && c.Cache.URL == "" {
		return fmt.Errorf("cache.url is required when cache is enabled")
	}
	if c.Alerts.Enabled && c.Alerts.Type == "kafka" && len(c.Alerts.KafkaBrokers) == 0 {
		return fmt.Errorf("alerts.kafka_brokers is required for kafka alerts")
	}
	return nil
}
