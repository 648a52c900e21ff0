package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/brandish-progression/internal/config"
	"github.com/osse101/brandish-progression/internal/logger"
)

// SetupLogger installs the default logger described by cfg writing to w,
// then logs the startup banner and every configuration warning.
func SetupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	log := logger.InitLoggerWithWriter(cfg.LoggerConfig(), w)

	log.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	log.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"store", cfg.StoreDriver,
		"port", cfg.Port)

	for _, warning := range cfg.Warnings() {
		log.Warn(LogMsgConfigWarning, "warning", warning)
	}
	return log
}
