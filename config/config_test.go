package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("FOUNDRY_ENDPOINT", "https://example.services.ai.azure.com/api/projects/demo")
	t.Setenv("FOUNDRY_API_KEY", "test-key")
	t.Setenv("MODEL_DEPLOYMENT_NAME", "test-model")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://example.services.ai.azure.com/api/projects/demo", cfg.Endpoint)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "test-model", cfg.ModelDeployment)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
}

func TestLoadFromEnvMissingRequired(t *testing.T) {
	setRequired(t)
	os.Unsetenv("FOUNDRY_API_KEY")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOUNDRY_API_KEY")
}
