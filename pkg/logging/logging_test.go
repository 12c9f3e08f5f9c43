package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/David-Botos/data-quality/pkg/config"
)

func TestNewWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.log")

	logger, err := New(&config.Config{LogLevel: "warn", LogFormat: "json", LogFile: path})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger.Warn("Invalid phone format")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Invalid phone format"`)
}

func TestNewConsole(t *testing.T) {
	logger, err := New(&config.Config{LogLevel: "DEBUG", LogFormat: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(&config.Config{LogLevel: "loud", LogFormat: "json"})
	assert.Error(t, err)

	_, err = New(&config.Config{LogLevel: "info", LogFormat: "xml"})
	assert.Error(t, err)
}
