package bootstrap

import "time"

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting shop API"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgMailDisabled        = "SMTP not configured, transactional mail disabled"
	LogMsgStaffFeedDisabled   = "Discord webhook not configured, staff feed disabled"
	LogMsgPaymentsDisabled    = "STRIPE_SECRET_KEY not set, real-money checkout will fail upstream"
)

// JobPriceSync names the price reconciliation schedule in logs
const JobPriceSync = "price_sync"

// Error messages for startup
const (
	ErrMsgTokenService = "failed to create token service"
	ErrMsgMailer       = "failed to create mailer"
	ErrMsgStaffFeed    = "failed to create staff feed"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgStoppingScheduler     = "Stopping scheduler..."
	LogMsgDrainingWorkers       = "Draining background jobs..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgWorkerDrainIncomplete = "Background jobs did not finish before the deadline"
)

// Environments that enable source locations in logs
const (
	EnvDev         = "dev"
	EnvDevelopment = "development"
)

// ShutdownTimeout bounds the whole graceful shutdown sequence
const ShutdownTimeout = 30 * time.Second
