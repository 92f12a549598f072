package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"ivy-resolve-cli/internal/logger"
)

func TestGetLogger(t *testing.T) {
	t.Parallel()

	log := logger.GetLogger()
	assert.NotNil(t, log)

	// subsequent calls return the same instance
	assert.Equal(t, log, logger.GetLogger())

	log.Info("Test log message")
	log.Debug("Test debug message")
}

func TestSetLevel(t *testing.T) {
	t.Parallel()

	logger.SetLevel(zapcore.DebugLevel)
	log := logger.GetLogger()
	assert.NotNil(t, log)
	log.Debug("Debug message")

	logger.SetLevel(zapcore.ErrorLevel)
	// filtered out at error level
	log.Debug("Debug message (should be filtered)")
	log.Error("Error message (should work)")

	logger.SetLevel(zapcore.InfoLevel)
}

func TestLoggerConcurrency(t *testing.T) {
	t.Parallel()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			log := logger.GetLogger()
			assert.NotNil(t, log)
			log.Info("Concurrent log message")
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
