// Package config loads the process-level settings for talking to the hosted
// agents service. All required values fail fast with a descriptive error
// before any remote call is attempted.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by every agent invocation.
type Config struct {
	// Endpoint is the base URL of the hosted agents service.
	Endpoint string `envconfig:"FOUNDRY_ENDPOINT" required:"true"`

	// APIKey authenticates against the service.
	APIKey string `envconfig:"FOUNDRY_API_KEY" required:"true"`

	// ModelDeployment is the model deployment agents are provisioned on.
	ModelDeployment string `envconfig:"MODEL_DEPLOYMENT_NAME" required:"true"`

	// PollInterval is the delay between run status checks.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`

	// RequestTimeout bounds each individual service request.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"true"`
}

// Load reads configuration from the environment, loading a .env file first
// if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv reads configuration directly from environment variables.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
