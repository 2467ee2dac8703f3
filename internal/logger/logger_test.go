package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogRotation(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "geoview.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}
	require.NoError(t, InitWithFileConfig("debug", cfg, false))

	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("uniforms computed %d: %s", i, longMessage)
	}
	Sync()

	_, err := os.Stat(logFile)
	require.NoError(t, err, "main log file should exist")

	files, err := os.ReadDir(tempDir)
	require.NoError(t, err)

	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "geoview.log" || !strings.HasPrefix(name, "geoview") {
			continue
		}
		rotated++
		// geoview-YYYY-MM-DDTHH-MM-SS.SSS.log
		assert.Contains(t, name, "-20", "rotated file %s lacks a timestamp", name)
	}
	assert.NotZero(t, rotated, "no rotated files found")
}

func TestLogLevels(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
			require.NoError(t, InitWithFileConfig(tt.level, cfg, false))

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)

			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	logFile := filepath.Join(t.TempDir(), "json.log")

	require.NoError(t, InitWithOptions(Options{
		Level:  "info",
		Format: FormatJSON,
		File:   FileConfig{Path: logFile, MaxSizeMB: 1},
	}))
	Named("viewport").Info("constructed", zap.Float64("zoom", 12))
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "viewport", entry["logger"])
	assert.Equal(t, "constructed", entry["msg"])
	assert.Equal(t, 12.0, entry["zoom"])
}

func TestInitRejectsUnknownSettings(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	assert.Error(t, InitWithOptions(Options{Level: "verbose", Console: true}))
	assert.Error(t, InitWithOptions(Options{Level: "info", Format: "xml", Console: true}))
}

func TestNamedUsesGlobalLogger(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	core, logs := observer.New(zapcore.WarnLevel)
	Set(zap.New(core))

	Named("project").Warn("singular matrix")
	Named("project").Info("dropped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "project", entries[0].LoggerName)
	assert.Equal(t, "singular matrix", entries[0].Message)
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	Set(nil)
	assert.False(t, Log.Core().Enabled(zapcore.ErrorLevel))
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	assert.Equal(t, "/tmp/test.log", cfg.Path)
	assert.Equal(t, 50, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAgeDays)
	assert.True(t, cfg.Compress)
}
