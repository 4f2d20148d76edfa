package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// StatementsDir is where input PDF statements are read from.
	StatementsDir string
	// OutputDir receives the consolidated CSV, workbook, and screenshots.
	OutputDir string
	// StatementYear is injected into parsed dates (they carry no year).
	StatementYear int
	// RenderDPI is the resolution for page screenshots.
	RenderDPI int
	// ListenAddr is the HTTP API listen address for serve mode.
	ListenAddr string
}

// Load reads configuration from environment variables, after loading a .env
// file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StatementsDir: getEnv("STATEMENTS_DIR", "invoices"),
		OutputDir:     getEnv("OUTPUT_DIR", "output"),
		StatementYear: getEnvAsInt("STATEMENT_YEAR", time.Now().Year()),
		RenderDPI:     getEnvAsInt("RENDER_DPI", 150),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
	}

	if cfg.StatementYear < 1900 || cfg.StatementYear > 2200 {
		return nil, fmt.Errorf("STATEMENT_YEAR out of range: %d", cfg.StatementYear)
	}
	if cfg.RenderDPI <= 0 {
		return nil, fmt.Errorf("RENDER_DPI must be positive, got %d", cfg.RenderDPI)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
