package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig carries the signing parameters for session tokens.
type JWTConfig struct {
	Secret          string // HMAC signing secret
	ExpirationHours int    // token lifetime
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS
// (default 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	hours := 24
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		h, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		hours = h
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", hours)
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}
