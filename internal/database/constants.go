package database

import "time"

// Pool sizing applied when PoolOptions leaves a field at zero
const (
	DefaultMinConnections  = 2
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = time.Hour
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

const (
	LogMsgConnected        = "Connected to PostgreSQL"
	LogMsgMigrationApplied = "Applied migration"
	LogMsgSchemaUpToDate   = "Database schema is up to date"
)
