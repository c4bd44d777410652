package config

import (
	"fmt"
	"os"
)

// Secret environment variable names. Secrets never live in the config
// file.
const (
	envStoreAPIKey = "HIREBOARD_STORE_API_KEY"
	envJWTSecret   = "HIREBOARD_JWT_SECRET"
	envGeminiKey   = "GEMINI_API_KEY"
	envDatabaseURL = "DATABASE_URL"
)

// StoreAPIKey returns the data API key. Required for the rest backend.
func StoreAPIKey() (string, error) {
	return requireEnv(envStoreAPIKey)
}

// JWTSecret returns the shared secret used to verify access tokens.
func JWTSecret() (string, error) {
	return requireEnv(envJWTSecret)
}

// GeminiAPIKey returns the Gemini API key. Required for the gemini
// assistant provider.
func GeminiAPIKey() (string, error) {
	return requireEnv(envGeminiKey)
}

// DatabaseURL returns the PostgreSQL connection URL. Required for the
// postgres backend.
func DatabaseURL() (string, error) {
	return requireEnv(envDatabaseURL)
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s is required but not set", name)
	}
	return value, nil
}
