package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Converter behaviour
	NormalizeMaxPasses int  // Upper bound for the normalizer fixpoint loop
	SanitizeInput      bool // Run incoming HTML through the sanitizer before parsing
	TrimWhitespace     bool // Drop whitespace-only text between blocks after parsing
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		NormalizeMaxPasses: getEnvInt("NORMALIZE_MAX_PASSES", DefaultNormalizeMaxPasses),
		SanitizeInput:      getEnv("SANITIZE_INPUT", "true") == "true",
		TrimWhitespace:     getEnv("TRIM_WHITESPACE", "true") == "true",
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// StrictNormalization reports whether a normalizer that fails to converge
// should abort the conversion. Production passes the input through instead.
func (c *Config) StrictNormalization() bool {
	return c.Environment != "prod"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
