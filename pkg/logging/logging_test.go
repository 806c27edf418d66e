package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("json_to_file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")
		logger, err := New(Config{Level: "warn", Format: "json", OutputPath: logFile})
		require.NoError(t, err)
		logger.Info("hidden")
		logger.Warn("shown", zap.String("dir", "/tmp"))
		_ = logger.Sync()

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "hidden"))
		assert.True(t, strings.Contains(string(data), `"msg":"shown"`))
	})

	t.Run("unknown_level_is_info", func(t *testing.T) {
		logger, err := New(Config{Level: "chatty", Format: "console", OutputPath: filepath.Join(t.TempDir(), "c.log")})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.InfoLevel))
		assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	})
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("debug"))
	assert.True(t, ValidLevel("error"))
	assert.False(t, ValidLevel("loud"))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
