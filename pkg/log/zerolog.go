package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	ctmerrors "github.com/YuminosukeSato/ctm/pkg/errors"
)

// zerologLogger is the default Logger backend.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w at the given
// minimum level.
func NewZerologLogger(w io.Writer, level Level) Logger {
	return &zerologLogger{zl: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()}
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.emit(z.zl.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.emit(z.zl.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.emit(z.zl.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { z.emit(z.zl.Error(), msg, fields) }

func (z *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	if len(fields) > 1 {
		ev = ev.Fields(evenFields(fields))
	}
	ev.Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	if len(fields) < 2 {
		return z
	}
	return &zerologLogger{zl: z.zl.With().Fields(evenFields(fields)).Logger()}
}

func (z *zerologLogger) Enabled(ctx context.Context, level Level) bool {
	return z.zl.GetLevel() <= toZerologLevel(level)
}

// evenFields drops a trailing key without a value.
func evenFields(fields []any) []any {
	if len(fields)%2 == 1 {
		return fields[:len(fields)-1]
	}
	return fields
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologProvider hands out named loggers sharing one writer and level.
type zerologProvider struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	base  zerolog.Logger
}

// NewZerologProvider returns a LoggerProvider writing to w.
func NewZerologProvider(w io.Writer, level Level) LoggerProvider {
	p := &zerologProvider{w: w}
	p.SetLevel(level)
	return p
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &zerologLogger{zl: p.base}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &zerologLogger{zl: p.base.With().Str(ComponentKey, name).Logger()}
}

func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.base = zerolog.New(p.w).Level(toZerologLevel(level)).With().Timestamp().Logger()
}

// InstallWarningBridge routes errors.Warn through a zerolog logger writing
// to w. Warnings that implement zerolog.LogObjectMarshaler contribute their
// structured fields. The returned function removes the bridge.
func InstallWarningBridge(w io.Writer) (uninstall func()) {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Str(ComponentKey, "warnings").Logger()
	ctmerrors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(warning.Error())
	})
	return func() { ctmerrors.SetZerologWarnFunc(nil) }
}
