package logger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentLogger gửi log tới fluentd; tag là mức log
type FluentLogger struct {
	client   *fluent.Fluent
	fields   map[string]interface{}
	minLevel Level
}

func NewFluentLogger(host string, port int, tagPrefix string, minLevel Level) (*FluentLogger, error) {
	client, err := fluent.New(fluent.Config{
		FluentHost: host,
		FluentPort: port,
		TagPrefix:  tagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect fluentd %s:%d: %w", host, port, err)
	}
	return &FluentLogger{client: client, fields: map[string]interface{}{}, minLevel: minLevel}, nil
}

func (f *FluentLogger) post(lvl Level, tag, format string, v ...interface{}) {
	if f.minLevel > lvl {
		return
	}
	data := make(map[string]interface{}, len(f.fields)+3)
	for k, val := range f.fields {
		data[k] = val
	}
	data["level"] = tag
	data["message"] = fmt.Sprintf(format, v...)
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	_ = f.client.Post(tag, data)
}

func (f *FluentLogger) Info(format string, v ...interface{}) {
	f.post(InfoLevel, "info", format, v...)
}

func (f *FluentLogger) Warn(format string, v ...interface{}) {
	f.post(WarnLevel, "warn", format, v...)
}

func (f *FluentLogger) Error(format string, v ...interface{}) {
	f.post(ErrorLevel, "error", format, v...)
}

func (f *FluentLogger) Debug(format string, v ...interface{}) {
	f.post(DebugLevel, "debug", format, v...)
}

func (f *FluentLogger) With(key string, value interface{}) Logger {
	fields := make(map[string]interface{}, len(f.fields)+1)
	for k, v := range f.fields {
		fields[k] = v
	}
	fields[key] = value
	return &FluentLogger{client: f.client, fields: fields, minLevel: f.minLevel}
}

func (f *FluentLogger) Close() error {
	return f.client.Close()
}

// MultiLogger ghi cùng một dòng log ra nhiều backend
type MultiLogger struct {
	loggers []Logger
}

func NewMultiLogger(loggers ...Logger) Logger {
	if len(loggers) == 1 {
		return loggers[0]
	}
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Info(format string, v ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, v...)
	}
}

func (m *MultiLogger) Warn(format string, v ...interface{}) {
	for _, l := range m.loggers {
		l.Warn(format, v...)
	}
}

func (m *MultiLogger) Error(format string, v ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, v...)
	}
}

func (m *MultiLogger) Debug(format string, v ...interface{}) {
	for _, l := range m.loggers {
		l.Debug(format, v...)
	}
}

func (m *MultiLogger) With(key string, value interface{}) Logger {
	out := make([]Logger, 0, len(m.loggers))
	for _, l := range m.loggers {
		out = append(out, l.With(key, value))
	}
	return &MultiLogger{loggers: out}
}
