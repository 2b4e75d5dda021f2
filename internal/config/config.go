// Package config loads server configuration from the environment.
//
// Configuration is read ONCE at process start (in main) into an explicit
// Config struct, then injected into the components that need it. Nothing
// else in the codebase reads os.Getenv — that keeps every dependency on a
// setting visible in a constructor signature.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port   int
	DBPath string

	// JWTSecret signs access tokens. Required — the server refuses to
	// start without it, since every protected route depends on it.
	JWTSecret string

	// Google OAuth credentials for the server-side login flow.
	// Optional: when empty, the /auth/google/login redirect routes are not
	// registered. POST /auth/google (client-supplied profile) still works.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// GeminiAPIKey is the chat-completion provider credential.
	// Optional: when empty, /ai/recommend returns a configuration error
	// instead of calling the provider.
	GeminiAPIKey string
}

// Load reads .env (if present) and the process environment into a Config.
//
// A missing .env file is not an error — in production, variables come from
// the real environment and the file simply doesn't exist.
func Load() (Config, error) {
	// Ignore the error: godotenv.Load fails when .env is absent, which is
	// the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnvAsInt("PORT", 8080),
		DBPath:             getEnv("DB_PATH", "data/gamevault.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET environment variable is required")
	}

	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%d/auth/google/callback", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
