package app

import (
	"strings"

	"github.com/meirshuvax/bynet-portal/pkg/logger"
)

// ConfigureLogging initialises the global logger with the provided settings, defaulting to info/json.
func ConfigureLogging(level, format string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	return logger.Init(level, format)
}
