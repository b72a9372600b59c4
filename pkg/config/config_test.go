package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
repeat_count: 7
seed: 42
recursion: omit
max_depth: 10
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RepeatCount)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.OmitOnRecursion())
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("seed: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, Default().RepeatCount, cfg.RepeatCount)
	assert.False(t, cfg.OmitOnRecursion())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "negative repeat count", yaml: "repeat_count: -1"},
		{name: "huge repeat count", yaml: "repeat_count: 5000"},
		{name: "unknown recursion", yaml: "recursion: explode"},
		{name: "negative depth", yaml: "max_depth: -2"},
		{name: "unknown level", yaml: "log_level: loud"},
		{name: "malformed", yaml: "repeat_count: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, Config{LogLevel: "ERROR"}.Level())
	assert.Equal(t, slog.LevelInfo, Config{}.Level())
}
