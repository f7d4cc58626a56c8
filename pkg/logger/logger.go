package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envLocal = "local"

// SetupLogger builds the application logger for the given environment.
// The instance is passed explicitly through constructors; there is no
// package-level logger.
func SetupLogger(env string, level string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == envLocal {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		logger, err = cfg.Build()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		logger, err = cfg.Build()
	}

	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	return logger
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
