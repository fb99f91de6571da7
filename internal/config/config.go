package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// placeholder values people leave in .env files after copying the template.
// Treated the same as a missing key so the UI can render setup instructions
// instead of a wall of upstream 401s.
var placeholderKeys = map[string]bool{
	"":                 true,
	"your-api-key":     true,
	"YOUR_API_KEY":     true,
	"changeme":         true,
	"<helius-api-key>": true,
}

// Config holds all configuration for CheckSol
type Config struct {
	// Helius configuration
	HeliusAPIKey  string
	HeliusBaseURL string
	HeliusRPCURL  string

	// DexScreener configuration
	DexScreenerBaseURL string

	// HTTP server configuration
	Host string
	Port string

	// Per-request wall clock budget for a full analysis
	AnalysisTimeout time.Duration

	// Logging configuration
	LogLevel string
}

// ErrMissingHeliusKey marks the distinct configuration-error outcome: the
// upstream credential is absent or still a placeholder.
type ErrMissingHeliusKey struct{}

func (ErrMissingHeliusKey) Error() string {
	return "HELIUS_API_KEY is missing or still set to a placeholder value"
}

// Load reads configuration from the environment (and .env, when present) and
// validates it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HeliusAPIKey:       strings.TrimSpace(os.Getenv("HELIUS_API_KEY")),
		HeliusBaseURL:      getEnv("HELIUS_BASE_URL", "https://api.helius.xyz"),
		HeliusRPCURL:       getEnv("HELIUS_RPC_URL", "https://mainnet.helius-rpc.com"),
		DexScreenerBaseURL: getEnv("DEXSCREENER_BASE_URL", "https://api.dexscreener.com"),
		Host:               getEnv("HOST", "0.0.0.0"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	timeout, err := parseDurationEnv("ANALYSIS_TIMEOUT", 45*time.Second)
	if err != nil {
		return cfg, fmt.Errorf("invalid ANALYSIS_TIMEOUT: %w", err)
	}
	cfg.AnalysisTimeout = timeout

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// validate checks that the configuration is usable
func (c Config) validate() error {
	if placeholderKeys[c.HeliusAPIKey] {
		return ErrMissingHeliusKey{}
	}

	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.AnalysisTimeout < time.Second {
		return fmt.Errorf("ANALYSIS_TIMEOUT must be at least 1s, got %s", c.AnalysisTimeout)
	}

	validLogLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be one of: trace, debug, info, warn, error, fatal, panic)", c.LogLevel)
	}

	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationEnv parses a duration environment variable with a default value
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	str := os.Getenv(key)
	if str == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(str)
}
