package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the dev backend configuration
type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Issuer
	IssuerType       string        `envconfig:"ISSUER_TYPE" default:"mock"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"us-east-1"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"10m"`
	AuditImagesLimit int32         `envconfig:"AUDIT_IMAGES_LIMIT" default:"0"`
	CleanupInterval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"5m"`
}

// ClientConfig is the CLI configuration
type ClientConfig struct {
	Environment string `envconfig:"ENV" default:"development"`

	// Backend
	BackendURL          string        `envconfig:"BACKEND_URL" default:"http://localhost:3000"`
	SendResultsToClient bool          `envconfig:"SEND_RESULTS_TO_CLIENT" default:"true"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// Detector
	DetectorType        string        `envconfig:"DETECTOR_TYPE" default:"mock"`
	AWSRegion           string        `envconfig:"AWS_REGION" default:"us-east-1"`
	ConfidenceThreshold float64       `envconfig:"LIVENESS_CONFIDENCE_THRESHOLD" default:"80"`
	PollInterval        time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 100 {
		return nil, fmt.Errorf("load client config: LIVENESS_CONFIDENCE_THRESHOLD %v out of range 0-100", cfg.ConfidenceThreshold)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
