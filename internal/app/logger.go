package app

import (
	"fmt"

	"github.com/Freeeeeet/music_school/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "music_school"

// NewLogger builds the root logger of one binary, named after it. Without an
// explicit level production logs from info and everything else from debug.
func NewLogger(env string, cfg config.LogConfig, name string) (*zap.Logger, error) {
	var zc zap.Config

	if env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = level
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	zc.OutputPaths = []string{output}

	// цветной уровень только в консоли
	if env != "production" && output == "stdout" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.InitialFields = map[string]any{"service": serviceName, "env": env}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Named(name), nil
}
