package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w. The level comes from
// SPEEDPONG_LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	if raw := GetEnv("SPEEDPONG_LOG_LEVEL", ""); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", raw)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}
