package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	StorageDriver string `validate:"oneof=memory postgres"`
	DBUser        string `validate:"required_if=StorageDriver postgres"`
	DBPassword    string
	DBHost        string `validate:"required_if=StorageDriver postgres"`
	DBPort        string `validate:"required_if=StorageDriver postgres"`
	DBName        string `validate:"required_if=StorageDriver postgres"`
	DBMaxConns    int    `validate:"min=1"`

	// GameConfigPath points at an optional JSON tuning file
	GameConfigPath string

	// RoundDelay paces automatic dungeon rounds; zero disables auto-advance
	RoundDelay  time.Duration `validate:"min=0"`
	WorkerCount int           `validate:"min=1"`

	AccountCacheSize int           `validate:"min=0"`
	AccountCacheTTL  time.Duration `validate:"min=0"`

	WebhookID    string `validate:"required_with=WebhookToken"`
	WebhookToken string `validate:"required_with=WebhookID"`

	TrustedProxies []string `validate:"dive,cidr|ip"`
	DeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:           getEnv(EnvAPIKey, ""),
		LogLevel:         strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:        strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:      getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:      getEnv(EnvServiceName, DefaultServiceName),
		Version:          getEnv(EnvVersion, DefaultVersion),
		StorageDriver:    strings.ToLower(getEnv(EnvStorageDriver, StorageMemory)),
		DBUser:           getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:       getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:           getEnv(EnvDBHost, DefaultDBHost),
		DBPort:           getEnv(EnvDBPort, DefaultDBPort),
		DBName:           getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:       getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		GameConfigPath:   getEnv(EnvGameConfigPath, ""),
		RoundDelay:       getEnvAsDuration(EnvRoundDelay, DefaultRoundDelay),
		WorkerCount:      getEnvAsInt(EnvWorkerCount, DefaultWorkerCount),
		AccountCacheSize: getEnvAsInt(EnvCacheSize, DefaultCacheSize),
		AccountCacheTTL:  getEnvAsDuration(EnvCacheTTL, DefaultCacheTTL),
		WebhookID:        getEnv(EnvWebhookID, ""),
		WebhookToken:     getEnv(EnvWebhookToken, ""),
		TrustedProxies:   getEnvAsSlice(EnvTrustedProxies),
		DeadLetterPath:   getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s", ErrMsgAPIKeyRequired)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}
	return nil
}

// WebhookEnabled reports whether Discord notifications are configured
func (c *Config) WebhookEnabled() bool {
	return c.WebhookID != "" && c.WebhookToken != ""
}

// AutoAdvance reports whether rounds are paced by the scheduler
func (c *Config) AutoAdvance() bool {
	return c.RoundDelay > 0
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration accepts Go durations ("1.5s") and bare milliseconds ("800")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// getEnvAsSlice splits a comma separated variable, dropping blanks
func getEnvAsSlice(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
