package logger

import (
	"io"
	"log/slog"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var levelVar = new(slog.LevelVar)

// L is the process-wide logger. It discards everything until Init points it
// at a file; stdout stays reserved for the conversation itself.
var L = slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: levelVar}))

// Init routes logs to a rotating file.
func Init(file string) {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	L = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar}))
	slog.SetDefault(L)
}

// SetLevel configures the global log level (debug, info, warn, error).
func SetLevel(lvl string) {
	switch strings.ToLower(lvl) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
}
