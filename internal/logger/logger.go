// Package logger builds the zap logger used across the CLI.
//
// Logs go to a rotated file by default so they never mix with the
// rendered tables or the live countdown line. A console core is added
// only when verbose output is requested.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/solatku/solatku/internal/config"
)

// New creates the logger. path overrides the log file location when
// non-empty. When verbose is true log lines are mirrored to stderr in
// addition to the log file.
func New(path string, verbose bool) *zap.Logger {
	level := logLevel()

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if path == "" {
		path = logPath()
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}),
		level,
	)

	core := fileCore
	if verbose {
		consoleConfig := zap.NewDevelopmentEncoderConfig()
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConfig),
			zapcore.AddSync(os.Stderr),
			level,
		)
		core = zapcore.NewTee(fileCore, consoleCore)
	}

	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// logLevel reads the level from the environment, defaulting to info.
func logLevel() zapcore.Level {
	switch os.Getenv(config.EnvLogLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// logPath resolves the log file location. SOLATKU_LOG_PATH wins;
// otherwise the file sits next to the schedule cache.
func logPath() string {
	if p := os.Getenv(config.EnvLogPath); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "solatku.log"
	}
	dir := filepath.Join(home, ".cache", "solatku")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "solatku.log"
	}
	return filepath.Join(dir, "solatku.log")
}
