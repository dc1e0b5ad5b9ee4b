// Package logging builds the zap logger. The terminal belongs to the UI, so
// logs go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chesshud/config"
)

const logFile = "chesshud/chesshud.log"

// Path returns where logs for cfg are written.
func Path(cfg config.LogConfig) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	return xdg.StateFile(logFile)
}

// New returns a JSON logger writing to the configured file.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	path, err := Path(cfg)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
