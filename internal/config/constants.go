package config

import "time"

// Environment variable names
const (
	EnvPort           = "PORT"
	EnvAPIKey         = "API_KEY"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvEnvironment    = "ENVIRONMENT"
	EnvServiceName    = "SERVICE_NAME"
	EnvVersion        = "VERSION"
	EnvStorageDriver  = "STORAGE_DRIVER"
	EnvDBUser         = "DB_USER"
	EnvDBPassword     = "DB_PASSWORD"
	EnvDBHost         = "DB_HOST"
	EnvDBPort         = "DB_PORT"
	EnvDBName         = "DB_NAME"
	EnvDBMaxConns     = "DB_MAX_CONNS"
	EnvGameConfigPath = "GAME_CONFIG_PATH"
	EnvRoundDelay     = "ROUND_DELAY"
	EnvWorkerCount    = "WORKER_COUNT"
	EnvCacheSize      = "ACCOUNT_CACHE_SIZE"
	EnvCacheTTL       = "ACCOUNT_CACHE_TTL"
	EnvWebhookID      = "DISCORD_WEBHOOK_ID"
	EnvWebhookToken   = "DISCORD_WEBHOOK_TOKEN"
	EnvTrustedProxies = "TRUSTED_PROXIES"
	EnvDeadLetterPath = "EVENT_DEAD_LETTER_PATH"
	EnvSchemaVersion  = "ENV_SCHEMA_VERSION"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultEnvironment    = "dev"
	DefaultServiceName    = "kuberpg"
	DefaultVersion        = "dev"
	DefaultDBUser         = "postgres"
	DefaultDBPassword     = "postgres"
	DefaultDBHost         = "localhost"
	DefaultDBPort         = "5432"
	DefaultDBName         = "kuberpg"
	DefaultDBMaxConns     = 10
	DefaultRoundDelay     = 800 * time.Millisecond
	DefaultWorkerCount    = 2
	DefaultCacheSize      = 1000
	DefaultCacheTTL       = 5 * time.Minute
	DefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Error messages
const (
	ErrMsgAPIKeyRequired    = "API_KEY environment variable must be set for security"
	ErrMsgInvalidPort       = "invalid PORT value"
	ErrMsgInvalidConfig     = "invalid configuration"
	ErrMsgReadGameConfig    = "failed to read game config"
	ErrMsgParseGameConfig   = "failed to parse game config"
	ErrMsgInvalidGameConfig = "invalid game config"
)
