package app

import (
	"os"

	"textbook-logistics/internal/config"
	"textbook-logistics/internal/logx"
)

// NewLogger builds the zap-backed service logger.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	z, err := logx.NewZap(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logx.NewZapAdapter(z), nil
}

// NewCLILogger builds a stderr text logger for interactive tools.
func NewCLILogger(level string) logx.Logger {
	return logx.NewSlog(os.Stderr, level)
}
