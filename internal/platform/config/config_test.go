package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POMEN_DATABASE_URL", "postgres://localhost/pomen")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "pomen.events", cfg.Kafka.Topic)
	assert.Equal(t, 8*time.Hour, cfg.Admin.TokenTTL)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("POMEN_DATABASE_URL", "")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("POMEN_DATABASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 30s
database:
  url: postgres://db.internal/pomen
kafka:
  brokers: [kafka-1:9092, kafka-2:9092]
  topic: pomen.events.prod
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://db.internal/pomen", cfg.Database.URL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "pomen.events.prod", cfg.Kafka.Topic)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
database:
  url: postgres://db.internal/pomen
`), 0o600))

	t.Setenv("POMEN_ADDR", ":7070")
	t.Setenv("POMEN_DATABASE_URL", "postgres://override/pomen")
	t.Setenv("POMEN_KAFKA_BROKERS", "kafka-a:9092, kafka-b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "postgres://override/pomen", cfg.Database.URL)
	assert.Equal(t, []string{"kafka-a:9092", "kafka-b:9092"}, cfg.Kafka.Brokers)
}
