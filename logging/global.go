package logging

import (
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance with default options
func InitLogger(logDir string) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLogger(logDir),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// InitLoggerWithOptions initializes the global logger with explicit
// retention, file size cap, and minimum level.
func InitLoggerWithOptions(logDir string, retentionWeeks int, maxFileSize int64, level slog.Level) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLoggerWithOptions(logDir, retentionWeeks, maxFileSize, level),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

func fallback(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelInfo).Info(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelError).Error(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Error(msg, args...)
}

func Warn(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelWarn).Warn(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelDebug).Debug(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Debug(msg, args...)
}
