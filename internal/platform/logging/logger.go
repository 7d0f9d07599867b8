package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/intern-portal/internal/platform/timeutil"
)

// ServiceName is attached to every log entry.
const ServiceName = "intern-portal"

// Cloud Logging severity names by zap level. Unlisted levels log as DEFAULT.
var severities = map[zapcore.Level]string{
	zapcore.DebugLevel:  "DEBUG",
	zapcore.InfoLevel:   "INFO",
	zapcore.WarnLevel:   "WARNING",
	zapcore.ErrorLevel:  "ERROR",
	zapcore.DPanicLevel: "CRITICAL",
	zapcore.PanicLevel:  "ALERT",
	zapcore.FatalLevel:  "EMERGENCY",
}

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	setup struct {
		once   sync.Once
		logger *zap.Logger
		err    error
	}
)

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.LevelKey = "severity"
	enc.MessageKey = "message"
	enc.CallerKey = "caller"
	enc.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(t.UTC().Format(timeutil.RFC3339Micros))
	}
	enc.EncodeLevel = func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
		name, ok := severities[l]
		if !ok {
			name = "DEFAULT"
		}
		pae.AppendString(name)
	}
	return enc
}

func build() {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	cfg.EncoderConfig = encoderConfig()
	cfg.InitialFields = map[string]any{"service": ServiceName}

	setup.logger, setup.err = cfg.Build(zap.AddCaller())
	if setup.err != nil {
		setup.logger = zap.NewNop()
	}
}

// SetLevel changes the minimum level of the process logger, e.g. "debug" or "warn".
// An empty name keeps the current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	level.SetLevel(l)
	return nil
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	setup.once.Do(build)
	return setup.logger
}

// Sync flushes buffered entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}

// Err reports a failure to build the logger; the process then logs nowhere.
func Err() error {
	setup.once.Do(build)
	return setup.err
}

// UserFields identify the portal user an entry concerns.
func UserFields(uid, role string) []zap.Field {
	fields := []zap.Field{zap.String("userId", uid)}
	if role != "" {
		fields = append(fields, zap.String("role", role))
	}
	return fields
}
