// Package logging builds the application logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger writing human-readable output to stderr and, when
// logFile is non-empty, JSON lines to a size-rotated file.
func New(debug bool, logFile string) *zap.Logger {
	// Keep stderr quiet unless --debug; warnings and errors always show.
	consoleLevel := zap.WarnLevel
	if debug {
		consoleLevel = zap.DebugLevel
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	core := consoleCore
	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.MessageKey = "message"
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		)
		core = zapcore.NewTee(consoleCore, fileCore)
	}

	return zap.New(core)
}

// Nop returns a logger that discards everything. For tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
