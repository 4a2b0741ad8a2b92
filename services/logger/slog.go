package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

type SlogConfig struct {
	// Writer mặc định là os.Stdout
	Writer    io.Writer
	Level     Level
	AddSource bool
	JSON      bool
	Color     bool
}

// SlogLogger ghi log có cấu trúc qua log/slog; màu sắc do tint xử lý
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(cfg SlogConfig) *SlogLogger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	level := toSlogLevel(cfg.Level)
	opts := &slog.HandlerOptions{AddSource: cfg.AddSource, Level: level}

	var handler slog.Handler
	switch {
	case cfg.JSON:
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	case cfg.Color:
		handler = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		handler = slog.NewTextHandler(cfg.Writer, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (s *SlogLogger) Info(format string, v ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, v...))
}

func (s *SlogLogger) Warn(format string, v ...interface{}) {
	s.logger.Warn(fmt.Sprintf(format, v...))
}

func (s *SlogLogger) Error(format string, v ...interface{}) {
	s.logger.Error(fmt.Sprintf(format, v...))
}

func (s *SlogLogger) Debug(format string, v ...interface{}) {
	s.logger.Debug(fmt.Sprintf(format, v...))
}

func (s *SlogLogger) With(key string, value interface{}) Logger {
	return &SlogLogger{logger: s.logger.With(slog.Any(key, value))}
}
