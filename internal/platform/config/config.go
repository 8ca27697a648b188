// Package config loads service configuration from an optional YAML file with
// environment variable overrides, so container deployments can ship a base
// file and tweak single values per environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server   Server      `yaml:"server"`
	Database Database    `yaml:"database"`
	Redis    RedisConfig `yaml:"redis"`
	Kafka    Kafka       `yaml:"kafka"`
	Admin    Admin       `yaml:"admin"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
}

// Database captures the Postgres connection settings.
type Database struct {
	URL string `yaml:"url"`
}

// RedisConfig captures the recently-mourned cache settings. An empty URL
// disables the cache.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Kafka captures the domain event publishing settings. No brokers disables
// publishing.
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Admin captures moderator authentication settings. The seed account exists
// so a fresh deployment has a working moderator login.
type Admin struct {
	JWTSigningKey string        `yaml:"jwt_signing_key"`
	JWTIssuer     string        `yaml:"jwt_issuer"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SeedUsername  string        `yaml:"seed_username"`
	SeedPassword  string        `yaml:"seed_password"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, and fills defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Database.URL == "" {
		return cfg, fmt.Errorf("database url is required (POMEN_DATABASE_URL)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "POMEN_ADDR")
	setString(&cfg.Server.LogLevel, "POMEN_LOG_LEVEL")
	setString(&cfg.Database.URL, "POMEN_DATABASE_URL")
	setString(&cfg.Redis.URL, "POMEN_REDIS_URL")
	setString(&cfg.Kafka.Topic, "POMEN_KAFKA_TOPIC")
	setString(&cfg.Admin.JWTSigningKey, "POMEN_JWT_SIGNING_KEY")
	setString(&cfg.Admin.SeedUsername, "POMEN_ADMIN_USERNAME")
	setString(&cfg.Admin.SeedPassword, "POMEN_ADMIN_PASSWORD")

	if brokers := os.Getenv("POMEN_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = cfg.Kafka.Brokers[:0]
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 5 * time.Minute
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "pomen.events"
	}
	if cfg.Admin.JWTSigningKey == "" {
		// Development fallback; production deployments must override.
		cfg.Admin.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if cfg.Admin.JWTIssuer == "" {
		cfg.Admin.JWTIssuer = "pomen"
	}
	if cfg.Admin.TokenTTL == 0 {
		cfg.Admin.TokenTTL = 8 * time.Hour
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
