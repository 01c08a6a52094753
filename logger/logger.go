package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger instantiate zerolog configuration.
// SURRENDER_LOG_LEVEL sets the global level and
// SURRENDER_LOG_FORMAT_JSON switches from console output to json
func NewLogger() *zerolog.Logger {
	var logger zerolog.Logger
	zerolog.SetGlobalLevel(parseLevel(os.Getenv("SURRENDER_LOG_LEVEL")))

	if strings.TrimSpace(os.Getenv("SURRENDER_LOG_FORMAT_JSON")) == "" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: time.RFC3339}
		output.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %s |", i))
		}
		output.FormatMessage = func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		}

		logger = zerolog.New(output).With().Timestamp().Caller().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	}
	return &logger
}

// parseLevel maps the provided level name to zerolog level.
// Unknown values fallback to info
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "panic":
		return zerolog.PanicLevel
	case "fatal":
		return zerolog.FatalLevel
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}
