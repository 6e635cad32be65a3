package logging

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is the global logger. It is only ever replaced whole.
var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "MACROPAD_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks MACROPAD_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeTo(level, "stderr")
}

// InitializeTo is Initialize with an explicit output path. The runtime TUI
// owns the terminal, so it logs to a file instead of stderr.
func InitializeTo(level, outputPath string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger.Store(zap.NewNop())
		return nil
	}

	zapLevel := ParseLevel(level)

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{outputPath},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if outputPath == "stderr" || outputPath == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Store(built)

	return nil
}

// ParseLevel maps a level name to a zap level. Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitializeFromEnv initializes the logger from the MACROPAD_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger and returns the previous one.
// Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return logger.Swap(l)
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	return logger.Load()
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogAction logs a button activation before it is executed
func LogAction(kind, value, text string) {
	Info("Executing action",
		zap.String("action", kind),
		zap.String("value", value),
		zap.String("button", text),
	)
}

// LogInjection logs a single injected event. Text payloads are truncated.
func LogInjection(op string, key string, text string) {
	fields := []zap.Field{zap.String("op", op)}
	if key != "" {
		fields = append(fields, zap.String("key", key))
	}
	if text != "" {
		fields = append(fields, zap.String("text", truncate(text, 64)))
	}
	Debug("Injecting input", fields...)
}

// LogCommand logs a command notification
func LogCommand(command string) {
	Info("Command requested", zap.String("command", command))
}

// LogPageChange logs a router transition
func LogPageChange(layout string, from, to string, index int) {
	Info("Page changed",
		zap.String("layout", layout),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("index", index),
	)
}

// LogLaunch logs the outcome of a process launch attempt
func LogLaunch(command string, err error, elapsed time.Duration) {
	if err != nil {
		Warn("Process launch failed",
			zap.String("command", command),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return
	}
	Info("Process launched",
		zap.String("command", command),
		zap.Duration("elapsed", elapsed),
	)
}

// LogRemote logs a remote-control connection event
func LogRemote(connID, remoteAddr string, event string) {
	Info("Remote event",
		zap.String("conn_id", connID),
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Sync flushes any buffered log entries
func Sync() {
	_ = GetLogger().Sync()
}
