package events

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "TREASURY_KAFKA_BROKERS=k1:9092, k2:9092\nTREASURY_KAFKA_TOPIC=from_file\nTREASURY_POSTGRES_TABLE=archive\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv(EnvKafkaTopic, "from_env")
	t.Setenv(EnvPostgresDSN, "")

	cfg, err := LoadConfig(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	// The environment takes precedence over files.
	assert.Equal(t, "from_env", cfg.KafkaTopic)
	assert.Equal(t, "archive", cfg.PostgresTable)
	assert.Equal(t, "", cfg.PostgresDSN)
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, name := range []string{EnvKafkaBrokers, EnvKafkaTopic, EnvPostgresDSN, EnvPostgresTable} {
		if v, ok := os.LookupEnv(name); ok {
			os.Unsetenv(name)
			defer os.Setenv(name, v)
		}
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, defaultName, cfg.KafkaTopic)
	assert.Equal(t, defaultName, cfg.PostgresTable)

	sinks, err := cfg.Open(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sinks)
}
