package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/qyinm/catalogtui/config"
)

// New builds a JSON logger for cfg. When cfg.File is empty the logger writes
// to fallback; an empty fallback yields a no-op logger, which is what the
// terminal UI wants since stdout belongs to the screen.
func New(cfg config.LogConfig, fallback string) (*zap.Logger, error) {
	sink := cfg.File
	if sink == "" {
		sink = fallback
	}
	if sink == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{sink}
	zc.ErrorOutputPaths = []string{sink}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
