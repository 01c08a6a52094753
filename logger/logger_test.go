package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLoggerLogLevel(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		logLevel string
		expected string
	}{
		{
			logLevel: "info",
			expected: "info",
		},
		{
			logLevel: "warn",
			expected: "warn",
		},
		{
			logLevel: "debug",
			expected: "debug",
		},
		{
			logLevel: "error",
			expected: "error",
		},
		{
			logLevel: "trace",
			expected: "trace",
		},
		{
			logLevel: " DEBUG ",
			expected: "debug",
		},
		{
			logLevel: "plop",
			expected: "info",
		},
	}

	for _, tc := range tests {
		t.Setenv("SURRENDER_LOG_LEVEL", tc.logLevel)
		log.Logger = *NewLogger()
		assert.Equal(tc.expected, zerolog.GlobalLevel().String())

		t.Setenv("SURRENDER_LOG_FORMAT_JSON", "true")
		log.Logger = *NewLogger()
		assert.Equal(tc.expected, zerolog.GlobalLevel().String())
		assert.Nil(os.Unsetenv("SURRENDER_LOG_FORMAT_JSON"))
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestLogger_info(t *testing.T) {
	log.Logger = *NewLogger()
	log.Info().Msgf("Testing logger")
}
