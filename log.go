package reactor

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar controls diagnostic logging verbosity for programs
// that call LogFromEnv. When unset, logging stays silent.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "REACTOR_LOG_LEVEL"

// LogToFile builds a zap logger writing to path. The running Program
// owns stdout, so diagnostics have to go to a file; attach the result
// with WithLogger and tail the file from another terminal.
func LogToFile(path, level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "", "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build file logger: %w", err)
	}
	return logger, nil
}

// LogFromEnv returns a file logger when REACTOR_LOG_LEVEL is set, and a
// nop logger otherwise.
func LogFromEnv(path string) (*zap.Logger, error) {
	level := os.Getenv(LogLevelEnvVar)
	if level == "" {
		return zap.NewNop(), nil
	}
	return LogToFile(path, level)
}
