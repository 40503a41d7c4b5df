package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file with environment overrides
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/insight")
	}

	setDefaults(v)

	v.SetEnvPrefix("INSIGHT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 5560)

	// Source defaults
	v.SetDefault("source.base_url", "http://localhost:5555")
	v.SetDefault("source.database", "telemetry")
	v.SetDefault("source.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.url", "localhost:6379")
	v.SetDefault("cache.ttl", "5m")

	// Etcd defaults
	v.SetDefault("etcd.endpoints", []string{"http://localhost:2379"})
	v.SetDefault("etcd.dial_timeout", "5s")

	// Alerts defaults
	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.type", "nats")
	v.SetDefault("alerts.url", "nats://localhost:4222")
	v.SetDefault("alerts.subject_prefix", "insight.anomalies")
	v.SetDefault("alerts.redis_stream", "insight")

	// Analysis defaults
	v.SetDefault("analysis.max_concurrency", 4)
	v.SetDefault("analysis.max_results", 50)
	v.SetDefault("analysis.min_correlation", 0.7)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the built-in default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 5560,
		},
		Source: SourceConfig{
			BaseURL:  "http://localhost:5555",
			Database: "telemetry",
			Timeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			URL: "localhost:6379",
			TTL: 5 * time.Minute,
		},
		Etcd: EtcdConfig{
			Endpoints:   []string{"http://localhost:2379"},
			DialTimeout: 5 * time.Second,
		},
		Alerts: AlertsConfig{
			Type:          "nats",
			URL:           "nats://localhost:4222",
			SubjectPrefix: "insight.anomalies",
			RedisStream:   "insight",
		},
		Analysis: AnalysisConfig{
			MaxConcurrency: 4,
			MaxResults:     50,
			MinCorrelation: 0.7,
		},
	}
}
