// Package config provides configuration loading and validation for the
// dashboard. Structural settings come from a YAML file via viper; secrets
// come from the environment.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Backend names accepted by StoreConfig.Backend.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Assistant provider names accepted by AssistantConfig.Provider.
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// Config is the full dashboard configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
}

// ServerConfig controls the HTTP listener and logging.
type ServerConfig struct {
	Port  int  `mapstructure:"port" validate:"min=1,max=65535"`
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=rest postgres"`
	// RESTURL is the base URL of the REST data API. Required for the
	// rest backend.
	RESTURL string `mapstructure:"rest_url" validate:"omitempty,url"`
}

// AuthConfig points at the external auth service.
type AuthConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AssistantConfig selects the chat assistant provider.
type AssistantConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=http gemini"`
	// Endpoint is the chat endpoint URL. Required for the http provider.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	// Model overrides the default Gemini model for the gemini provider.
	Model string `mapstructure:"model"`
}

// IngestConfig controls job-description import behavior.
type IngestConfig struct {
	UseBrowser bool `mapstructure:"use_browser"`
}

// Load unmarshals the viper-backed configuration and applies defaults.
func Load() (*Config, error) {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("store.backend", BackendREST)
	viper.SetDefault("assistant.provider", ProviderHTTP)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Store.Backend == BackendREST && c.Store.RESTURL == "" {
		return fmt.Errorf("invalid configuration: store.rest_url is required for the rest backend")
	}
	if c.Assistant.Provider == ProviderHTTP && c.Assistant.Endpoint == "" {
		return fmt.Errorf("invalid configuration: assistant.endpoint is required for the http provider")
	}
	return nil
}
