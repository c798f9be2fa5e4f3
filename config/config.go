package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	HTTPListenAddr     string
	CORSAllowedOrigins []string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated)

	// Redis configuration (optional; empty disables the price cache)
	RedisURL string

	// Ledger configuration
	InitialBalance decimal.Decimal // balance granted to new accounts
	MinimumStake   decimal.Decimal // smallest accepted bet/parlay stake

	// Odds applied to spread and over/under bets (the standard -110 line)
	SpreadTotalOdds decimal.Decimal

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp", or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production", or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// HTTP
		HTTPListenAddr:     getEnvWithDefault("HTTP_LISTEN_ADDR", ":8080"),
		CORSAllowedOrigins: strings.Split(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS (optional, empty disables event publishing)
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Redis (optional)
		RedisURL: os.Getenv("REDIS_URL"),

		// Ledger defaults
		InitialBalance:  decimal.NewFromFloat(300.00),
		MinimumStake:    decimal.NewFromFloat(5.00),
		SpreadTotalOdds: decimal.NewFromFloat(1.91),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "ledger-service"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 30000,

		// Logging
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override ledger defaults if environment variables are set
	if balance := os.Getenv("INITIAL_BALANCE"); balance != "" {
		parsed, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid INITIAL_BALANCE %q: %w", balance, err)
		}
		config.InitialBalance = parsed
	}
	if stake := os.Getenv("MINIMUM_STAKE"); stake != "" {
		parsed, err := decimal.NewFromString(stake)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIMUM_STAKE %q: %w", stake, err)
		}
		config.MinimumStake = parsed
	}
	if odds := os.Getenv("SPREAD_TOTAL_ODDS"); odds != "" {
		parsed, err := decimal.NewFromString(odds)
		if err != nil {
			return nil, fmt.Errorf("invalid SPREAD_TOTAL_ODDS %q: %w", odds, err)
		}
		config.SpreadTotalOdds = parsed
	}
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		parsed, err := strconv.Atoi(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_EXPORT_INTERVAL_MS %q: %w", interval, err)
		}
		config.OTelExportIntervalMillis = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
		if !config.MinimumStake.IsPositive() {
			return nil, fmt.Errorf("MINIMUM_STAKE must be positive")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		HTTPListenAddr:     ":0",
		CORSAllowedOrigins: []string{"*"},
		InitialBalance:     decimal.NewFromFloat(300.00),
		MinimumStake:       decimal.NewFromFloat(5.00),
		SpreadTotalOdds:    decimal.NewFromFloat(1.91),
		OTelExporterType:   "none",
		LogLevel:           "error",
	}
}

