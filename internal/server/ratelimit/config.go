package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is a per-endpoint throttle. A trailing "/" on Path enables prefix
// matching; Limit <= 0 means unlimited.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// LoadConfig reads limiter settings from the environment.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-endpoint throttles. Matching runs a model
// inference per request, so it gets by far the tightest budget.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/matches", Method: "GET", Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		{Path: "/profiles/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/posts", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// match finds the rule for a route, preferring exact paths over prefixes.
func (c *Config) match(path, method string) *Rule {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method == method && r.Path == path {
			return r
		}
	}
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
