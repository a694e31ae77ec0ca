package bootstrap

import (
	"log/slog"

	"github.com/saofrance/shop-api/internal/config"
	"github.com/saofrance/shop-api/internal/logger"
)

// SetupLogger initializes the process-wide structured logger from cfg and
// logs the startup banner. Source locations are only added in development.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == EnvDev || cfg.Environment == EnvDevelopment

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"mail_enabled", cfg.MailEnabled(),
		"staff_feed_enabled", cfg.StaffFeedEnabled(),
		"price_sync_interval", cfg.PriceSyncInterval)
}
