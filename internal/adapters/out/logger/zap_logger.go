package logger

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// ZapLogger writes JSON entries through zap. The event name is the message.
type ZapLogger struct {
	base *zap.Logger
}

func NewZapLogger(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base}
}

// NewJSONLogger builds a production zap logger with ISO8601 timestamps, stamped with
// the service name and host.
func NewJSONLogger(level string, serviceName string) (*ZapLogger, error) {
	var zapLevel zapcore.Level
	switch out.ParseLogLevel(level) {
	case out.LogLevelDebug:
		zapLevel = zapcore.DebugLevel
	case out.LogLevelWarn:
		zapLevel = zapcore.WarnLevel
	case out.LogLevelError:
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	base, err := config.Build()
	if err != nil {
		return nil, err
	}

	if serviceName != "" {
		base = base.With(zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		base = base.With(zap.String("hostname", hostname))
	}

	return NewZapLogger(base), nil
}

func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func toZapFields(fields out.LogFields) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zapFields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zapFields = append(zapFields, zap.Any(k, fields[k]))
	}
	return zapFields
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZapLogger{base: l.base.With(toZapFields(fields)...)}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{base: l.base.With(zap.String("module", module))}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.base.Debug(event, toZapFields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.base.Info(event, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.base.Warn(event, toZapFields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.base.Error(event, toZapFields(fields)...)
}
