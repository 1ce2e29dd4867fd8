package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerAvailableBeforeInit(t *testing.T) {
	require.NotNil(t, Logger())
	require.NotPanics(t, func() {
		Info("message before init")
	})
}

func TestInitAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		require.NoError(t, Init(level, "json"), "level %s", level)
		require.NotNil(t, Logger())
	}
}

func TestInitFallsBackOnUnknownLevel(t *testing.T) {
	require.NoError(t, Init("chatty", "console"))
	require.NotNil(t, Logger())
}

func TestWithModuleReturnsChildLogger(t *testing.T) {
	require.NoError(t, Init("info", "json"))
	child := WithModule("honors")
	require.NotNil(t, child)
	require.NotSame(t, Logger(), child)
}
