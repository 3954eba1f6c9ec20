package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
// Note: This is a stateless configuration - no database or auth secrets needed
// Auth and accounts are handled by the hosting gateway when one is present
type Config struct {
	// Environment
	Environment string
	Port        string

	// Engine defaults for new sessions
	DefaultPreset string // ambient, minimal, dramatic or playful
	DefaultSeed   uint64 // seed used when a session request omits one
	Diagnostics   bool   // start sessions with diagnostic output on

	// Session registry
	MaxSessions   int           // 0 = unlimited
	SessionTTL    time.Duration // idle time before a session is swept
	SweepInterval time.Duration // how often the sweeper runs

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the hosting gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DefaultPreset: getEnv("DEFAULT_PRESET", "ambient"),
		DefaultSeed:   getEnvUint("DEFAULT_SEED", 1),
		Diagnostics:   getEnv("DIAGNOSTICS", "false") == "true",
		MaxSessions:   getEnvInt("MAX_SESSIONS", 256),
		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		AuthMode:      getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}
