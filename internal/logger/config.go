package logger

import (
	"log/slog"
	"strings"
)

// Config is the process logger setup, built from the application config
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a logger config from explicit application settings
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

func (c Config) LogLevel() slog.Level {
	if lvl, ok := levels[strings.ToLower(c.Level)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes identifies the deployment on every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
