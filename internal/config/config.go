package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not override them
const (
	DefaultArchitecturePath = "architecture.yaml"
	DefaultIntelPath        = "threat_intelligence.yaml"
	DefaultOutputFormat     = "text"
	DefaultLogLevel         = "info"
	DefaultTokenBudget      = 500
)

// Config holds runtime settings resolved from the environment. CLI
// flags take precedence over these values.
type Config struct {
	ArchitecturePath string
	IntelPath        string
	OutputFormat     string
	LogLevel         string
	TokenBudget      int
}

// Load reads an optional .env file, then the process environment,
// falling back to defaults. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ArchitecturePath: getEnv("THREATMAP_ARCH", DefaultArchitecturePath),
		IntelPath:        getEnv("THREATMAP_INTEL", DefaultIntelPath),
		OutputFormat:     getEnv("THREATMAP_OUTPUT", DefaultOutputFormat),
		LogLevel:         getEnv("THREATMAP_LOG_LEVEL", DefaultLogLevel),
		TokenBudget:      getEnvInt("THREATMAP_TOKEN_BUDGET", DefaultTokenBudget),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
