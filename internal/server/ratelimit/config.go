package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig is one endpoint tier. A Path ending in "/" matches by
// prefix; Limit 0 means unlimited.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointConfig
}

// LoadConfig reads limiter settings from the environment, falling back to
// the built-in tiers.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	cfg := defaultConfig()
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Endpoints:       defaultEndpoints(),
	}
}

// defaultEndpoints defines the tiers: strict on assistant-backed
// endpoints, moderate on mutations. Reads fall through to the default
// limit; the health check is unlimited via the matcher.
func defaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/chat", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/api/v1/chat", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/api/v1/interviews/", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		{Path: "/questions", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/questions/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/v1/questions", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/v1/questions/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/v1/interviews/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
