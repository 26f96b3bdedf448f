// Package logging builds the process logger: a console sink and a log file,
// each with its own minimum level.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the sinks and their levels.
type Config struct {
	ConsoleLevel string    // Minimum level printed to Console (default "info")
	FileLevel    string    // Minimum level written to FilePath (default "debug")
	FilePath     string    // Log file; empty disables the file sink
	Console      io.Writer // Defaults to os.Stdout
}

// DefaultFilePath mirrors the working-directory log location used by the pipeline scripts.
var DefaultFilePath = filepath.Join("logs", "main.log")

// New builds a logger that tees every record to the console and the log file.
// The returned close function syncs and releases the file.
func New(cfg Config) (*zap.Logger, func() error, error) {
	consoleLevel, err := parseLevel(cfg.ConsoleLevel, zapcore.InfoLevel)
	if err != nil {
		return nil, nil, err
	}
	fileLevel, err := parseLevel(cfg.FileLevel, zapcore.DebugLevel)
	if err != nil {
		return nil, nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(), zapcore.AddSync(console), consoleLevel),
	}

	closeFn := func() error { return nil }
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(f), fileLevel))
		closeFn = func() error {
			_ = f.Sync()
			return f.Close()
		}
	}

	return zap.New(zapcore.NewTee(cores...)), closeFn, nil
}

// newEncoder renders "2006-01-02 15:04:05,000 - INFO - message" followed by any fields.
func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05,000"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	})
}

func parseLevel(s string, def zapcore.Level) (zapcore.Level, error) {
	if s == "" {
		return def, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return def, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
