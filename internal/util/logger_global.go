package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. Calling it again replaces the
// previous logger and closes it.
func InitLogger(opts LoggerOptions) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}

	loggerMu.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if previous != nil {
		previous.Close()
	}
	return nil
}

// GetLogger returns the global logger, or a discarding logger before
// InitLogger has been called.
func GetLogger() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if globalLogger == nil {
		return NewNopLogger()
	}
	return globalLogger
}

// LogInfo convenience functions for logging
func LogInfo(msg string) {
	GetLogger().Info(msg)
}

func LogInfof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func LogDebug(msg string) {
	GetLogger().Debug(msg)
}

func LogDebugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func LogWarn(msg string) {
	GetLogger().Warn(msg)
}

func LogWarnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

func LogError(msg string) {
	GetLogger().Error(msg)
}

func LogErrorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}
