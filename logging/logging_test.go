package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/warp/call-billing/logging"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.log")

	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	logger.Debug("statement computed")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"statement computed"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.log")

	logger, err := logging.New(logging.Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	logger, err := logging.New(logging.Config{Level: "loud", Output: "stdout"})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
