package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// New creates a production logger with the level taken from DASHGEN_LOG_LEVEL
// (debug, info, warn, error); unset or unknown values mean info.
func New() (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	switch strings.ToLower(os.Getenv("DASHGEN_LOG_LEVEL")) {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return config.Build()
}
