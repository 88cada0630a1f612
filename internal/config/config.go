package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/blackjacklab/trainer/pkg/blackjack"
)

// Storage backend names accepted in TRAINER_STORAGE
const (
	StorageMemory        = "memory"
	StorageSQLite        = "sqlite"
	StorageElasticsearch = "elasticsearch"
)

// Config holds all configuration for the application
type Config struct {
	// Table rules
	Rules blackjack.Rules

	// Storage configuration
	Storage          string
	DataDir          string
	SQLitePath       string
	ElasticsearchURL string
	ESUsername       string
	ESPassword       string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	rules := blackjack.DefaultRules()
	rules.NumDecks = getEnvInt("TRAINER_DECKS", rules.NumDecks)
	rules.Penetration = getEnvFloat("TRAINER_PENETRATION", rules.Penetration)
	rules.DealerHitsSoft17 = getEnvBool("TRAINER_H17", rules.DealerHitsSoft17)
	rules.DoubleAfterSplit = getEnvBool("TRAINER_DAS", rules.DoubleAfterSplit)
	rules.AllowSurrender = getEnvBool("TRAINER_SURRENDER", rules.AllowSurrender)
	rules.BlackjackPayout = getEnvFloat("TRAINER_BJ_PAYOUT", rules.BlackjackPayout)
	rules.MaxSplits = getEnvInt("TRAINER_MAX_SPLITS", rules.MaxSplits)
	rules.MinBet = getEnvInt64("TRAINER_MIN_BET", rules.MinBet)
	rules.StartingBankroll = getEnvInt64("TRAINER_BANKROLL", rules.StartingBankroll)

	dataDir := getEnvWithDefault("TRAINER_DATA_DIR", filepath.Join(wd, "data"))

	cfg := &Config{
		Rules:            rules,
		Storage:          getEnvWithDefault("TRAINER_STORAGE", StorageSQLite),
		DataDir:          dataDir,
		SQLitePath:       getEnvWithDefault("TRAINER_SQLITE_PATH", filepath.Join(dataDir, "trainer.db")),
		ElasticsearchURL: getEnvWithDefault("TRAINER_ES_URL", "http://localhost:9200"),
		ESUsername:       os.Getenv("TRAINER_ES_USERNAME"),
		ESPassword:       os.Getenv("TRAINER_ES_PASSWORD"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite, StorageElasticsearch:
	default:
		return fmt.Errorf("TRAINER_STORAGE must be one of memory, sqlite, elasticsearch; got %q", c.Storage)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid table rules: %w", err)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
