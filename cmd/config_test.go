package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "termite", configBaseName)
	assert.Equal(t, "termite.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "include", includeFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "paths.include", includeConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "watch.debounce", debounceConfigKey)
	assert.Equal(t, ".termite.log", defaultLogFilename)
	assert.Equal(t, "TERMITE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigDuration(t *testing.T) {
	const key = "test.duration"

	t.Cleanup(func() { viper.Set(key, nil) })

	assert.Equal(t, time.Second, configDuration(key, time.Second))

	viper.Set(key, "250ms")
	assert.Equal(t, 250*time.Millisecond, configDuration(key, time.Second))

	viper.Set(key, "-1s")
	assert.Equal(t, time.Second, configDuration(key, time.Second))

	viper.Set(key, "soon")
	assert.Equal(t, time.Second, configDuration(key, time.Second))
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "termite.log")

	configureLogger(logPath, true)
	slog.Debug("Logger configured", "path", logPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger configured")
	assert.Contains(t, string(data), "level=DEBUG")
}

func TestConfigureLogger_InfoByDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "termite.log")

	configureLogger(logPath, false)
	slog.Debug("hidden")
	slog.Info("shown")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
