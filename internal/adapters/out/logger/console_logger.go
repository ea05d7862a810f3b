package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

var levelColors = map[out.LogLevel]string{
	out.LogLevelDebug: colorGray,
	out.LogLevelInfo:  colorGreen,
	out.LogLevelWarn:  colorYellow,
	out.LogLevelError: colorRed,
}

// ConsoleLogger prints colored, indented entries for local development.
type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	minLevel      out.LogLevel
	writer        io.Writer
	mu            *sync.Mutex
}

func NewConsoleLogger(timezone string, level string) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		module:        "unknown",
		location:      loc,
		minLevel:      out.ParseLogLevel(level),
		writer:        os.Stdout,
		mu:            &sync.Mutex{},
	}, nil
}

// WithWriter redirects output, mostly for tests.
func (l *ConsoleLogger) WithWriter(w io.Writer) *ConsoleLogger {
	clone := l.clone()
	clone.writer = w
	return clone
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	fields := make(out.LogFields, len(l.defaultFields))
	for k, v := range l.defaultFields {
		fields[k] = v
	}
	return &ConsoleLogger{
		defaultFields: fields,
		module:        l.module,
		location:      l.location,
		minLevel:      l.minLevel,
		writer:        l.writer,
		mu:            l.mu,
	}
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	clone := l.clone()
	for k, v := range fields {
		clone.defaultFields[k] = v
	}
	return clone
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	clone := l.clone()
	clone.module = module
	return clone
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if !l.minLevel.Allows(level) {
		return
	}

	merged := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")
	fieldsBytes, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		fieldsBytes = []byte(fmt.Sprintf(`{"event": %q, "marshalError": %q}`, event, err.Error()))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "%s[%s]%s %s[%s]%s %s[%s]%s\n%s\n",
		colorGray, timestamp, colorReset,
		levelColors[level], level, colorReset,
		colorCyan, l.module, colorReset,
		string(fieldsBytes),
	)
}
