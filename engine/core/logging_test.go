package core

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("chatty")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	SetLogLevel(WarnLevel)
	LogInfo("hidden %d", 1)
	assert.Empty(t, buf.String())

	LogWarn("shader log: %s", "0:1 syntax error")
	assert.Contains(t, buf.String(), "0:1 syntax error")

	SetLogLevel(DebugLevel)
}
