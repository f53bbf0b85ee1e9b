package database

import "time"

// Pool defaults
const (
	DefaultMinConnections  int32 = 2
	DefaultMaxConnIdleTime       = 5 * time.Minute
	DefaultMaxConnLifetime       = time.Hour
	PingTimeout                  = 5 * time.Second
)

// Migration settings
const (
	MigrationDialect = "postgres"
	MigrationDir     = "."
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

// Log field keys
const (
	LogFieldVersion  = "version"
	LogFieldMaxConns = "max_conns"
	LogFieldHost     = "host"
)
