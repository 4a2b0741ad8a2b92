package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel đọc mức log từ cấu hình, mặc định là info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	// With trả về logger con mang thêm một trường ngữ cảnh
	With(key string, value interface{}) Logger
}

// DefaultLogger implement Logger interface sử dụng log package
type DefaultLogger struct {
	level  Level
	out    *log.Logger
	prefix string
}

// NewDefaultLogger tạo một instance mới của DefaultLogger
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewWriterLogger(os.Stderr, level)
}

func NewWriterLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewFileLogger ghi log vào logs/app-YYYY-MM-DD.log
func NewFileLogger(dir string, level Level) (*DefaultLogger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	return NewWriterLogger(f, level), f, nil
}

func (l *DefaultLogger) printf(lvl Level, tag, format string, v ...interface{}) {
	if l.level > lvl {
		return
	}
	l.out.Output(3, "["+tag+"] "+l.prefix+fmt.Sprintf(format, v...))
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.printf(InfoLevel, "INFO", format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.printf(WarnLevel, "WARN", format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.printf(ErrorLevel, "ERROR", format, v...)
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.printf(DebugLevel, "DEBUG", format, v...)
}

func (l *DefaultLogger) With(key string, value interface{}) Logger {
	return &DefaultLogger{
		level:  l.level,
		out:    l.out,
		prefix: l.prefix + fmt.Sprintf("%s=%v ", key, value),
	}
}

// Nop bỏ qua mọi log, dùng trong test
type Nop struct{}

func (Nop) Info(string, ...interface{})        {}
func (Nop) Warn(string, ...interface{})        {}
func (Nop) Error(string, ...interface{})       {}
func (Nop) Debug(string, ...interface{})       {}
func (n Nop) With(string, interface{}) Logger { return n }
