// Package logger builds the zap.Logger used throughout the engine, CLI,
// and ingestion packages.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style logger at the given level ("debug",
// "info", "warn", "error"; unrecognized values fall back to "info").
func New(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cfg.DisableStacktrace = true

	built, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return built
}

// NewDebug returns New("debug") when debug is true and New("info")
// otherwise, for callers that only toggle verbose output on or off.
func NewDebug(debug bool) *zap.Logger {
	if debug {
		return New("debug")
	}
	return New("info")
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Logger is a narrow logging interface, implemented by ZapLogger, for
// callers that want to stub logging in tests without pulling in zap.
type Logger interface {
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	With(fields ...zapcore.Field) Logger
}

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps New(level) in a ZapLogger.
func NewZapLogger(level string) *ZapLogger {
	return &ZapLogger{logger: New(level)}
}

func (l *ZapLogger) Debug(msg string, fields ...zapcore.Field) { l.logger.Debug(msg, fields...) }
func (l *ZapLogger) Info(msg string, fields ...zapcore.Field)  { l.logger.Info(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...zapcore.Field)  { l.logger.Warn(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...zapcore.Field) { l.logger.Error(msg, fields...) }

func (l *ZapLogger) With(fields ...zapcore.Field) Logger {
	return &ZapLogger{logger: l.logger.With(fields...)}
}

// Unwrap returns the underlying *zap.Logger for callers that need it
// directly (e.g. to pass into internal/resolver.Resolve).
func (l *ZapLogger) Unwrap() *zap.Logger {
	return l.logger
}
