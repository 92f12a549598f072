package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	instance    *zap.Logger     //nolint:gochecknoglobals // Singleton pattern for logger
	atomicLevel zap.AtomicLevel //nolint:gochecknoglobals // Singleton pattern for logger
	once        sync.Once       //nolint:gochecknoglobals // Singleton pattern for logger
)

func initLogger() {
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderCfg.CallerKey = "" // remove caller
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		atomicLevel,
	)

	instance = zap.New(core)
}

// GetLogger returns the process-wide logger, creating it on first use.
func GetLogger() *zap.Logger {
	once.Do(initLogger)
	return instance
}

// SetLevel adjusts the minimum level of the process-wide logger.
func SetLevel(level zapcore.Level) {
	once.Do(initLogger)
	atomicLevel.SetLevel(level)
}
