package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SetupLogger installs a JSON slog logger writing to w as the slog default
// and as the package provider. Errors logged under ErrAttrKey get their
// cockroachdb stack attached by ErrFmtHandler.
func SetupLogger(loglevel string, w io.Writer) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	logger := slog.New(errFmtHandler)
	slog.SetDefault(logger)
	SetProvider(NewSlogProvider(logger))
	return nil
}

// ToLogLevel parses "debug", "info", "warn" or "error".
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l as a Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, slogArgs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, slogArgs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, slogArgs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, slogArgs(fields)...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(slogArgs(fields)...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogArgs turns a leading bare error into an ErrAttr so that ErrFmtHandler
// can find it.
func slogArgs(fields []any) []any {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			out := make([]any, 0, len(fields))
			out = append(out, ErrAttr(err))
			return append(out, fields[1:]...)
		}
	}
	return fields
}

type slogProvider struct {
	logger *slog.Logger
}

// NewSlogProvider returns a LoggerProvider backed by l.
func NewSlogProvider(l *slog.Logger) LoggerProvider {
	return &slogProvider{logger: l}
}

func (p *slogProvider) GetLogger() Logger { return NewSlogLogger(p.logger) }

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(p.logger.With(ComponentKey, name))
}

// SetLevel is a no-op: the slog handler level is fixed by SetupLogger.
func (p *slogProvider) SetLevel(level Level) {}
