package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Secrets come from the environment; a local .env is optional.
	_ = godotenv.Load()

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
