package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/tracelog"

	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

// traceLogger bridges pgx tracelog output to the application logger.
type traceLogger struct {
	log logger.Logger
}

// NewTraceLogger adapts log to the tracelog.Logger interface.
func NewTraceLogger(log logger.Logger) tracelog.Logger {
	return &traceLogger{log: log.With(logger.String("component", "pgx"))}
}

func (t *traceLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]logger.Field, 0, len(data))
	for k, v := range data {
		if k == "args" {
			// bound values may carry user content; log only how many there were
			if args, ok := v.([]any); ok {
				fields = append(fields, logger.Int("args", len(args)))
				continue
			}
		}
		fields = append(fields, logger.Any(k, v))
	}

	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		t.log.Debug(msg, fields...)
	case tracelog.LogLevelInfo:
		t.log.Info(msg, fields...)
	case tracelog.LogLevelWarn:
		t.log.Warn(msg, fields...)
	case tracelog.LogLevelError:
		t.log.Error(msg, fields...)
	default:
		t.log.Error(msg, append(fields, logger.String("invalid_pgx_level", fmt.Sprint(level)))...)
	}
}
