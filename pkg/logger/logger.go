package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = slog.Default()

// Init sets up the process-wide logger. Human readable records go to
// stderr; when logFilePath is set, JSON records are also written to a
// size-rotated file there.
func Init(level slog.Level, logFilePath string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)

	if logFilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     0, // ignore age
			Compress:   false,
		}
		handler = fanout{handler, slog.NewJSONHandler(rotator, opts)}
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return Log
}

// New returns a logger writing text records to w, for tests and embedding.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
