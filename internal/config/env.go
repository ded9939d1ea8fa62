package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds process configuration read from the environment
type Settings struct {
	TaxConfigFile   string
	CoefficientFile string
	Port            int
	LogLevel        string
	LogPretty       bool
	ReloadSchedule  string // cron schedule; empty disables reloading
	AllowedOrigins  []string
	RateLimit       float64 // API requests per second; 0 disables
	RateLimitBurst  int
}

// LoadSettings reads settings from the environment, loading a .env file first
// when one exists.
func LoadSettings() *Settings {
	_ = godotenv.Load()

	return &Settings{
		TaxConfigFile:   getEnv("PENSIONSIM_TAX_CONFIG", "data/tax_2026.yaml"),
		CoefficientFile: getEnv("PENSIONSIM_COEFFICIENTS", "data/coefficients.yaml"),
		Port:            getEnvAsInt("PENSIONSIM_PORT", 8080),
		LogLevel:        getEnv("PENSIONSIM_LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("PENSIONSIM_LOG_PRETTY", true),
		ReloadSchedule:  getEnv("PENSIONSIM_RELOAD_SCHEDULE", "@every 5m"),
		AllowedOrigins:  []string{getEnv("PENSIONSIM_ALLOWED_ORIGIN", "*")},
		RateLimit:       getEnvAsFloat("PENSIONSIM_RATE_LIMIT", 10),
		RateLimitBurst:  getEnvAsInt("PENSIONSIM_RATE_BURST", 30),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}
