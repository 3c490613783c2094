package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/config"
)

// New creates a structured logger from the log settings. Records are written
// to stderr and, when a file is configured, to the log file as well. The log
// file's directory is created if it does not exist.
func New(settings config.LogSettings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(settings.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	outputs := []string{"stderr"}
	if settings.File != "" {
		if err := os.MkdirAll(filepath.Dir(settings.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		outputs = append(outputs, settings.File)
	}

	encoding := settings.Format
	if encoding == "" {
		encoding = "console"
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.DisableStacktrace = false
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
