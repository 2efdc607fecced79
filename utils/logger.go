package utils

import (
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
)

// NewLogger builds the tint-backed logger shared by every component.
// An unknown level falls back to debug.
func NewLogger(w io.Writer, level string, noColor bool) *slog.Logger {
	envLogLevel := strings.ToLower(level)
	var slogLevel slog.Level
	err := slogLevel.UnmarshalText([]byte(envLogLevel))
	if err != nil {
		log.Printf("encountered log level: '%s'. The package does not support custom log levels", envLogLevel)
		slogLevel = slog.LevelDebug
	}

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = filepath.Base(source.File)
			}
		}
		return a
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:   true,
		Level:       slogLevel,
		ReplaceAttr: replaceAttrs,
		NoColor:     noColor,
	}))
	logger.Debug("debug messages are enabled")

	return logger
}
