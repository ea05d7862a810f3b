package out

import "strings"

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var logLevelWeight = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

// ParseLogLevel falls back to INFO for unknown names.
func ParseLogLevel(level string) LogLevel {
	parsed := LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if _, ok := logLevelWeight[parsed]; !ok {
		return LogLevelInfo
	}
	return parsed
}

// Allows reports whether a message at level passes a logger configured with l.
func (l LogLevel) Allows(level LogLevel) bool {
	return logLevelWeight[level] >= logLevelWeight[l]
}

type LogFields map[string]interface{}

type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
}
