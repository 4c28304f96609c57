// Package logger is the structured logger shared by every bookmarkd component.
// Callers depend on the Logger interface and the field helpers below, never
// on zap directly.
package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field.
type Field = zap.Field

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
	Fatalf(template string, args ...any)

	// With returns a child logger that adds fields to every entry.
	With(fields ...Field) Logger
	// Enabled reports whether entries at lvl ("debug", "info", ...) are written.
	Enabled(lvl string) bool

	Sync() error
}

type zapLogger struct {
	z *zap.Logger
	s *zap.SugaredLogger
}

// New builds the process logger. pretty selects colored console output for
// local runs; otherwise entries are JSON. An unknown level keeps zap's default
// for the chosen mode (debug when pretty, info otherwise).
func New(level string, pretty bool) Logger {
	cfg := zap.NewProductionConfig()
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if lvl, ok := parseLevel(level); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.InitialFields = map[string]any{"service": "bookmarkd"}

	z, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		panic(err)
	}
	return FromZap(z)
}

// NewNop discards every entry.
func NewNop() Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core.
func FromZap(z *zap.Logger) Logger {
	return &zapLogger{z: z, s: z.Sugar()}
}

// parseLevel accepts the four levels the service is configured with.
func parseLevel(lvl string) (zapcore.Level, bool) {
	switch lvl {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.z.Fatal(msg, fields...) }

func (l *zapLogger) Debugf(t string, args ...any) { l.s.Debugf(t, args...) }
func (l *zapLogger) Infof(t string, args ...any)  { l.s.Infof(t, args...) }
func (l *zapLogger) Warnf(t string, args ...any)  { l.s.Warnf(t, args...) }
func (l *zapLogger) Errorf(t string, args ...any) { l.s.Errorf(t, args...) }
func (l *zapLogger) Fatalf(t string, args ...any) { l.s.Fatalf(t, args...) }

func (l *zapLogger) With(fields ...Field) Logger { return FromZap(l.z.With(fields...)) }

func (l *zapLogger) Enabled(lvl string) bool {
	parsed, ok := parseLevel(lvl)
	return ok && l.z.Core().Enabled(parsed)
}

func (l *zapLogger) Sync() error { return l.z.Sync() }

// Field helpers.
func String(key, val string) Field                 { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Int64(key string, val int64) Field            { return zap.Int64(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Any(key string, val any) Field                { return zap.Any(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Error(err error) Field                        { return zap.Error(err) }
