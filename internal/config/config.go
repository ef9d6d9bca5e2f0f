// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/finanalysis/pkg/formulas"
)

// Config holds application configuration
type Config struct {
	LogLevel string
	Port     int
	DevMode  bool
	IRR      IRRConfig
}

// IRRConfig holds the solver defaults applied when a request leaves them unset
type IRRConfig struct {
	Guess         float64
	MaxIterations int
	Tolerance     float64
}

// Options converts the solver defaults to formulas.IRROptions
func (c IRRConfig) Options() formulas.IRROptions {
	return formulas.IRROptions{
		Guess:         c.Guess,
		MaxIterations: c.MaxIterations,
		Tolerance:     c.Tolerance,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvAsInt("GO_PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		IRR: IRRConfig{
			Guess:         getEnvAsFloat("IRR_GUESS", formulas.DefaultIRRGuess),
			MaxIterations: getEnvAsInt("IRR_MAX_ITERATIONS", formulas.DefaultIRRMaxIterations),
			Tolerance:     getEnvAsFloat("IRR_TOLERANCE", formulas.DefaultIRRTolerance),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid GO_PORT %d", c.Port)
	}
	if c.IRR.MaxIterations < 1 {
		return fmt.Errorf("invalid IRR_MAX_ITERATIONS %d: must be at least 1", c.IRR.MaxIterations)
	}
	if !(c.IRR.Tolerance > 0) {
		return fmt.Errorf("invalid IRR_TOLERANCE %v: must be positive", c.IRR.Tolerance)
	}
	if !(c.IRR.Guess > -1) {
		return fmt.Errorf("invalid IRR_GUESS %v: must be greater than -1", c.IRR.Guess)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
