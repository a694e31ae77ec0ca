package logger

import "log/slog"

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Attribute keys attached to every record or request-scoped logger
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyAccountID   = "account_id"
)

// levels maps LOG_LEVEL values to slog levels; unknown values fall back to info
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}
