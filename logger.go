package engram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with engram-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// FileLogConfig configures a rotating log file.
type FileLogConfig struct {
	// Filename is the file to write logs to.
	Filename string
	// MaxSize is the size in megabytes at which the file is rotated. Default: 100.
	MaxSize int
	// MaxBackups is the number of rotated files to keep. Zero keeps all.
	MaxBackups int
	// MaxAge is the number of days to keep rotated files. Zero keeps them forever.
	MaxAge int
}

// NewFileLogger creates a Logger that writes JSON logs to a rotating file.
// The returned io.Closer closes the file.
func NewFileLogger(cfg FileLogConfig, level slog.Level) (*Logger, io.Closer, error) {
	if cfg.Filename == "" {
		return nil, nil, errors.New("engram: log filename is required")
	}
	if st, err := os.Stat(cfg.Filename); err == nil && st.IsDir() {
		return nil, nil, errors.New("engram: can't use directory as log file name")
	}

	w := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		LocalTime:  true,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}, w, nil
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTypeID adds a type_id field to the logger.
func (l *Logger) WithTypeID(id TypeID) *Logger {
	return &Logger{
		Logger: l.Logger.With("type_id", string(id)),
	}
}

// WithName adds a name field to the logger (file path or blob name).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithVersion adds a format_version field to the logger.
func (l *Logger) WithVersion(v uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("format_version", v),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRegister logs a type registration.
func (l *Logger) LogRegister(ctx context.Context, id TypeID, err error) {
	if err != nil {
		l.ErrorContext(ctx, "type registration failed",
			"type_id", string(id),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "type registered",
			"type_id", string(id),
		)
	}
}

// LogUnknownType logs a polymorphic decode that named an unregistered type.
func (l *Logger) LogUnknownType(ctx context.Context, id TypeID, offset int) {
	l.ErrorContext(ctx, "unknown polymorphic type",
		"type_id", string(id),
		"offset", offset,
	)
}

// LogSave logs a persistence save.
func (l *Logger) LogSave(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"name", name,
			"size", size,
		)
	}
}

// LogLoad logs a persistence load.
func (l *Logger) LogLoad(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"name", name,
			"size", size,
		)
	}
}
