// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the top-level service configuration, loaded from environment
// variables. DATABASE_URL and GEMINI_API_KEY are required for the API server;
// everything else has a default.
type Config struct {
	Port        int    // HTTP port for the REST API
	DatabaseURL string // PostgreSQL connection URL
	GeminiKey   string // Gemini API key
	MatchModel  string // Generative model used for matching
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	model := os.Getenv("MATCH_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Config{
		Port:        port,
		DatabaseURL: databaseURL,
		GeminiKey:   apiKey,
		MatchModel:  model,
	}, nil
}
