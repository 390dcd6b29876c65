package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zapcore.Level
	}{
		{"no flags maps to warn", 0, zapcore.WarnLevel},
		{"-v maps to info", 1, zapcore.InfoLevel},
		{"-vv maps to debug", 2, zapcore.DebugLevel},
		{"beyond -vv stays debug", 5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Debug (-vv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestInitialize(t *testing.T) {
	t.Run("logger is usable before Initialize", func(t *testing.T) {
		require.NotNil(t, Logger)
		// Must not panic
		Infow("pre-init message", "key", "value")
	})

	t.Run("console output", func(t *testing.T) {
		err := Initialize(false, VerbosityInfo)
		require.NoError(t, err)
		require.NotNil(t, Logger)
		assert.False(t, JSONOutput)
	})

	t.Run("json output", func(t *testing.T) {
		err := Initialize(true, VerbosityUser)
		require.NoError(t, err)
		require.NotNil(t, Logger)
		assert.True(t, JSONOutput)
	})
}
