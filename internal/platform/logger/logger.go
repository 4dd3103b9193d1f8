package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger for prod and a console logger otherwise. An
// unknown level falls back to info with a warning.
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	parsed, levelErr := zapcore.ParseLevel(level)
	if levelErr != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}
	if levelErr != nil {
		log.Warn("invalid log level, using info", zap.String("level", level), zap.Error(levelErr))
	}
	return log, nil
}
