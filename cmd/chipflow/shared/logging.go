package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures console logging at the named level. Unknown names
// fall back to info.
func SetupLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a config-file level name onto a log level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
