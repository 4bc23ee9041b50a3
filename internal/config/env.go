package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable .env file. Existing process
// environment variables are never overridden.
func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", slog.String("path", path))
			return
		}
	}
}
