package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	slog.Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	slog.Info("hidden")
	assert.Empty(t, buf.String())

	slog.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	assert.NotNil(t, FromContext(ctx))

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestFromContext_IncludesIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLoggerWithWriter(Config{Level: "debug", Format: "json"}, &buf)

	ctx := WithAccountID(WithRequestID(context.Background(), "req-1"), "acc-1")
	FromContext(ctx).Info("scoped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry[AttrKeyRequestID])
	assert.Equal(t, "acc-1", entry[AttrKeyAccountID])
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestNewConfig_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := NewConfig("debug", "text", "shop-api", "dev", "dev", false)
	assert.False(t, cfg.IsJSON())
	assert.True(t, NewConfig("info", "JSON", "", "", "", false).IsJSON())

	InitLoggerWithWriter(cfg, &buf)
	slog.Debug("visible at debug")

	assert.Contains(t, buf.String(), "visible at debug")
	assert.Contains(t, buf.String(), "service=shop-api")
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.in}.LogLevel(), tt.in)
	}
}
