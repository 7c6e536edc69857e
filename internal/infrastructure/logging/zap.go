package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	applog "github.com/hubertnosek100/hmediator/internal/application/logging"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/config"
)

// ZapLogger implements the application Logger on top of zap
type ZapLogger struct {
	zapLogger *zap.Logger
}

// NewZapLogger builds a zap logger from the logging configuration
func NewZapLogger(cfg *config.LoggingConfig) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{"app": "hmediator"}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.DisableCaller = !cfg.IncludeCaller
	zapCfg.DisableStacktrace = !cfg.IncludeStacktrace

	if cfg.Format == "text" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	switch cfg.Output {
	case "file":
		zapCfg.OutputPaths = []string{cfg.FilePath}
	case "stdout":
		zapCfg.OutputPaths = []string{"stdout"}
	default:
		zapCfg.OutputPaths = []string{"stderr"}
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &ZapLogger{zapLogger: zapLogger}, nil
}

// NewZapLoggerFrom wraps an existing zap logger
func NewZapLoggerFrom(zapLogger *zap.Logger) *ZapLogger {
	return &ZapLogger{zapLogger: zapLogger}
}

// Log writes message at level with metadata as structured fields
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}

	switch strings.ToUpper(level) {
	case applog.LevelDebug:
		l.zapLogger.Debug(message, fields...)
	case applog.LevelWarn, "WARNING":
		l.zapLogger.Warn(message, fields...)
	case applog.LevelError:
		l.zapLogger.Error(message, fields...)
	default:
		l.zapLogger.Info(message, fields...)
	}
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.zapLogger.Sync()
}

var _ applog.Logger = (*ZapLogger)(nil)
