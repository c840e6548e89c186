package logger

import (
	"os"
	"strings"

	"github.com/ledgerline/filing-api/libs/go/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is nil until InitLogger runs; read it
// through L().
var Log *zap.Logger

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level       string `json:"level"`
	Stage       string `json:"stage"`
	EnableJSON  bool   `json:"enable_json"`
	EnableColor bool   `json:"enable_color"`
}

// InitLogger installs a logger suited to the given stage. LOG_LEVEL
// overrides the level; the test stage defaults to warnings only.
func InitLogger(stage string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" && stage == constants.TestEnvironment {
		level = "warn"
	}
	InitLoggerWithConfig(LoggerConfig{
		Level:       level,
		Stage:       stage,
		EnableJSON:  stage == constants.ProdEnvironment,
		EnableColor: stage == constants.LocalEnvironment,
	})
}

// InitLoggerWithConfig installs a logger built from config
func InitLoggerWithConfig(config LoggerConfig) {
	Log = New(config, zapcore.Lock(os.Stderr))
}

// New builds a logger writing to out without installing it globally.
// JSON output carries the service and stage on every line.
func New(config LoggerConfig, out zapcore.WriteSyncer) *zap.Logger {
	level := ParseLevel(config.Level)

	var encoder zapcore.Encoder
	if config.EnableJSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.MessageKey = "message"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		if config.EnableColor {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	// stack traces only at fatal in production unless debugging
	stackLevel := zapcore.ErrorLevel
	if config.Stage == constants.ProdEnvironment && level > zapcore.DebugLevel {
		stackLevel = zapcore.FatalLevel
	}

	options := []zap.Option{zap.AddCaller(), zap.AddStacktrace(stackLevel)}
	if config.EnableJSON {
		options = append(options, zap.Fields(
			zap.String("service", constants.ServiceName),
			zap.String("stage", config.Stage),
		))
	}
	return zap.New(zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(level)), options...)
}

// ParseLevel maps a configured level name to a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case constants.DebugLevel:
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the global logger, or a no-op logger when InitLogger has not run.
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zapcore.Field) {
	L().Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zapcore.Field) {
	L().Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zapcore.Field) {
	L().Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zapcore.Field) {
	L().Warn(msg, fields...)
}

// Fatal logs a message at FatalLevel and then calls os.Exit(1)
func Fatal(msg string, fields ...zapcore.Field) {
	L().Fatal(msg, fields...)
}

// With creates a child logger and adds structured context to it
func With(fields ...zapcore.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return L().Sync()
}
